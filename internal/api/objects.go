package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facetframe/facet/pkg/types"
)

type objectCreateRequest struct {
	Type       string                `json:"type"`
	Properties []types.PropertyInput `json:"properties"`
}

type objectEditRequest struct {
	ID         string                `json:"id"`
	Properties []types.PropertyInput `json:"properties"`
}

// objectJSON shapes an object for responses; property values render as
// their canonical scalar.
type objectJSON struct {
	ID           string              `json:"id"`
	User         string              `json:"user"`
	Type         string              `json:"type"`
	NameProperty string              `json:"nameProperty"`
	Properties   []propertyValueJSON `json:"properties"`
}

type propertyValueJSON struct {
	PropertyDef string `json:"propertyDef"`
	Name        string `json:"name"`
	DataType    string `json:"dataType"`
	Value       any    `json:"value"`
}

func shapeObject(o *types.Object) objectJSON {
	out := objectJSON{
		ID:           o.ID,
		User:         o.User,
		Type:         o.Type,
		NameProperty: o.NameProperty,
		Properties:   make([]propertyValueJSON, len(o.Properties)),
	}
	for i, pv := range o.Properties {
		out.Properties[i] = propertyValueJSON{
			PropertyDef: pv.PropertyDef,
			Name:        pv.Name,
			DataType:    pv.DataType,
			Value:       pv.Value.Scalar(),
		}
	}
	return out
}

func shapeObjects(objects []*types.Object) []objectJSON {
	out := make([]objectJSON, len(objects))
	for i, o := range objects {
		out[i] = shapeObject(o)
	}
	return out
}

func (h *handlers) listObjects(c *gin.Context) {
	objects, err := h.engine.Objects.List(caller(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "objects": shapeObjects(objects)})
}

func (h *handlers) listObjectsByType(c *gin.Context) {
	objects, err := h.engine.Objects.ListByType(caller(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "objects": shapeObjects(objects)})
}

func (h *handlers) getObject(c *gin.Context) {
	object, err := h.engine.Objects.Get(caller(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "object": shapeObject(object)})
}

func (h *handlers) createObject(c *gin.Context) {
	var req objectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	object, err := h.engine.Objects.Create(caller(c), req.Type, req.Properties)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"object":  shapeObject(object),
		"message": "Object successfully created.",
	})
}

func (h *handlers) editObject(c *gin.Context) {
	var req objectEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	object, err := h.engine.Objects.Edit(caller(c), req.ID, req.Properties)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"object":  shapeObject(object),
		"message": "Object successfully updated.",
	})
}

func (h *handlers) deleteObject(c *gin.Context) {
	if err := h.engine.Objects.Delete(caller(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Object successfully deleted."})
}

func (h *handlers) searchObjects(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	objects, err := h.engine.Objects.Search(caller(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "objects": shapeObjects(objects)})
}
