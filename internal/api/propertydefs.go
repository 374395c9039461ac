package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type propertyDefRequest struct {
	Name     string `json:"name"`
	DataType string `json:"dataType"`
}

func (h *handlers) listPropertyDefs(c *gin.Context) {
	defs, err := h.engine.PropertyDefs.List()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "propertyDefs": defs})
}

func (h *handlers) getPropertyDef(c *gin.Context) {
	def, err := h.engine.PropertyDefs.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "propertyDef": def})
}

func (h *handlers) createPropertyDef(c *gin.Context) {
	var req propertyDefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	def, err := h.engine.PropertyDefs.Create(req.Name, req.DataType)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"propertyDef": def,
		"message":     "Property definition successfully created.",
	})
}

func (h *handlers) editPropertyDef(c *gin.Context) {
	var req propertyDefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	def, err := h.engine.PropertyDefs.Edit(c.Param("id"), req.Name, req.DataType)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"propertyDef": def,
		"message":     "Property definition successfully updated.",
	})
}

func (h *handlers) deletePropertyDef(c *gin.Context) {
	if err := h.engine.PropertyDefs.Delete(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Property definition successfully deleted."})
}
