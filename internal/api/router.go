// Package api is the thin access boundary over the engine: per-entity
// gin handlers that resolve the caller identity from the request, invoke
// the stores, and shape JSON responses. No domain logic lives here.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/facetframe/facet/internal/engine"
)

// userHeader carries the already-resolved caller identifier. Session
// resolution happens upstream; the engine never re-derives it.
const userHeader = "X-Facet-User"

// NewRouter builds the gin engine with all entity routes mounted under
// /api.
func NewRouter(eng *engine.Engine, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	h := &handlers{engine: eng, log: log}

	apiGroup := r.Group("/api", h.resolveUser)
	{
		apiGroup.GET("/propertydefs", h.listPropertyDefs)
		apiGroup.GET("/propertydefs/:id", h.getPropertyDef)
		apiGroup.POST("/propertydefs", h.createPropertyDef)
		apiGroup.PUT("/propertydefs/:id", h.editPropertyDef)
		apiGroup.DELETE("/propertydefs/:id", h.deletePropertyDef)

		apiGroup.GET("/objecttypes", h.listObjectTypes)
		apiGroup.GET("/objecttypes/:id", h.getObjectType)
		apiGroup.POST("/objecttypes", h.createObjectType)
		apiGroup.PUT("/objecttypes", h.editObjectType)
		apiGroup.DELETE("/objecttypes/:id", h.deleteObjectType)

		apiGroup.POST("/objects/search", h.searchObjects)
		apiGroup.GET("/objects/type/:id", h.listObjectsByType)
		apiGroup.GET("/objects", h.listObjects)
		apiGroup.GET("/objects/:id", h.getObject)
		apiGroup.POST("/objects", h.createObject)
		apiGroup.PUT("/objects", h.editObject)
		apiGroup.DELETE("/objects/:id", h.deleteObject)

		apiGroup.GET("/optionsets", h.listOptionSets)
		apiGroup.GET("/optionsets/:id", h.getOptionSet)
		apiGroup.POST("/optionsets", h.createOptionSet)
		apiGroup.PUT("/optionsets/:id", h.editOptionSet)
		apiGroup.DELETE("/optionsets/:id", h.deleteOptionSet)
	}

	return r
}

// handlers binds the engine and logger for all route handlers.
type handlers struct {
	engine *engine.Engine
	log    zerolog.Logger
}

// resolveUser pulls the caller identifier off the request and aborts
// with 401 when it is missing.
func (h *handlers) resolveUser(c *gin.Context) {
	user := c.GetHeader(userHeader)
	if user == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "missing caller identity",
		})
		return
	}
	c.Set("user", user)
	c.Next()
}

// caller returns the resolved caller identifier for the request.
func caller(c *gin.Context) string {
	return c.GetString("user")
}

// requestLogger emits one structured log line per request.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
