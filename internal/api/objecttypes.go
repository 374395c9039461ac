package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facetframe/facet/pkg/types"
)

type objectTypeRequest struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	NameProperty string              `json:"nameProperty"`
	Properties   []types.PropertyRef `json:"properties"`
}

func (h *handlers) listObjectTypes(c *gin.Context) {
	views, err := h.engine.ObjectTypes.List(caller(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "objectTypes": views})
}

func (h *handlers) getObjectType(c *gin.Context) {
	view, err := h.engine.ObjectTypes.GetPopulated(caller(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "objectType": view})
}

func (h *handlers) createObjectType(c *gin.Context) {
	var req objectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	objectType, err := h.engine.ObjectTypes.Create(caller(c), req.Name, req.NameProperty, req.Properties)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"objectType": objectType,
		"message":    "Object type successfully created.",
	})
}

func (h *handlers) editObjectType(c *gin.Context) {
	var req objectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.engine.ObjectTypes.Edit(caller(c), req.ID, req.Name, req.NameProperty, req.Properties)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "objectsUpdated": updated})
}

func (h *handlers) deleteObjectType(c *gin.Context) {
	if err := h.engine.ObjectTypes.Delete(caller(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Object type successfully deleted."})
}
