package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type optionSetRequest struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

func (h *handlers) listOptionSets(c *gin.Context) {
	sets, err := h.engine.OptionSets.List()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "optionSets": sets})
}

func (h *handlers) getOptionSet(c *gin.Context) {
	set, err := h.engine.OptionSets.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "optionSet": set})
}

func (h *handlers) createOptionSet(c *gin.Context) {
	var req optionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	set, err := h.engine.OptionSets.Create(req.Name, req.Options)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"optionSet": set,
		"message":   "Option set successfully created.",
	})
}

func (h *handlers) editOptionSet(c *gin.Context) {
	var req optionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	set, err := h.engine.OptionSets.Edit(c.Param("id"), req.Name, req.Options)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"optionSet": set,
		"message":   "Option set successfully updated.",
	})
}

func (h *handlers) deleteOptionSet(c *gin.Context) {
	if err := h.engine.OptionSets.Delete(c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Option set successfully deleted."})
}
