package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Almas2004/led/internal/models"
	"github.com/Almas2004/led/internal/service"
	"github.com/Almas2004/led/internal/utils"
)

type contentEntity[T any] interface {
	*T
	models.Content
}

// ContentHandler serves the CRUD endpoints of one content kind.
type ContentHandler[T any, P contentEntity[T]] struct {
	svc *service.ContentService[T, P]
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler[T any, P contentEntity[T]](svc *service.ContentService[T, P]) *ContentHandler[T, P] {
	return &ContentHandler[T, P]{svc: svc}
}

// List handles GET /api/{kind}
func (h *ContentHandler[T, P]) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to retrieve "+h.svc.Kind())
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetBySlug handles GET /api/{kind}/:slug
func (h *ContentHandler[T, P]) GetBySlug(c *gin.Context) {
	item, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err, "Failed to retrieve "+h.svc.Kind())
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /api/{kind}
func (h *ContentHandler[T, P]) Create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_PAYLOAD", err.Error())
		return
	}
	created, err := h.svc.Create(c.Request.Context(), &item)
	if err != nil {
		writeError(c, err, "Failed to create "+h.svc.Kind())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/{kind}/:id
func (h *ContentHandler[T, P]) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_PAYLOAD", err.Error())
		return
	}
	updated, err := h.svc.Update(c.Request.Context(), id, &item)
	if err != nil {
		writeError(c, err, "Failed to update "+h.svc.Kind())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/{kind}/:id
func (h *ContentHandler[T, P]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "Failed to delete "+h.svc.Kind())
		return
	}
	c.Status(http.StatusNoContent)
}
