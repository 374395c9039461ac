package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facetframe/facet/pkg/types"
)

// fail maps an engine failure to a response: ValidationError and a
// missing entity id become a 400 with a caller-visible message,
// ErrNotFound a 404, anything else a logged 500.
func (h *handlers) fail(c *gin.Context, err error) {
	var ve *types.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": ve.Message})
	case errors.Is(err, types.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "missing entity id"})
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "not found"})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
	}
}

// badRequest reports a malformed request body.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
}
