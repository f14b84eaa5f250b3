package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Almas2004/led/internal/models"
	"github.com/Almas2004/led/internal/service"
	"github.com/Almas2004/led/internal/utils"
)

// LeadHandler serves lead capture and the staff lead endpoints.
type LeadHandler struct {
	svc *service.LeadService
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(svc *service.LeadService) *LeadHandler {
	return &LeadHandler{svc: svc}
}

// createLeadRequest is the public form payload. Status, createdAt and
// managerNote are not accepted from visitors.
type createLeadRequest struct {
	Name       string  `json:"name" binding:"required"`
	Phone      string  `json:"phone" binding:"required"`
	City       string  `json:"city" binding:"required"`
	Message    string  `json:"message"`
	PageURL    string  `json:"pageUrl"`
	Source     string  `json:"source"`
	ProductID  *string `json:"productId"`
	SolutionID *string `json:"solutionId"`
}

// List handles GET /api/leads
func (h *LeadHandler) List(c *gin.Context) {
	leads, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to retrieve leads")
		return
	}
	c.JSON(http.StatusOK, leads)
}

// Create handles POST /api/leads
func (h *LeadHandler) Create(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_PAYLOAD", err.Error())
		return
	}
	l, err := h.svc.Create(c.Request.Context(), &models.Lead{
		Name:       req.Name,
		Phone:      req.Phone,
		City:       req.City,
		Message:    req.Message,
		PageURL:    req.PageURL,
		Source:     req.Source,
		ProductID:  req.ProductID,
		SolutionID: req.SolutionID,
	})
	if err != nil {
		writeError(c, err, "Failed to create lead")
		return
	}
	c.JSON(http.StatusCreated, l)
}

// Update handles PATCH /api/leads/:id. Only status and managerNote are
// applied; other fields in the body are ignored.
func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var upd models.LeadUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.Error(c, http.StatusBadRequest, "INVALID_PAYLOAD", err.Error())
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), id, upd); err != nil {
		writeError(c, err, "Failed to update lead")
		return
	}
	c.Status(http.StatusNoContent)
}
