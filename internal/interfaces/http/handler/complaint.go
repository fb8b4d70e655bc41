package handler

import (
	appsupport "github.com/ebilling/backend/internal/application/support"
	"github.com/ebilling/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FileComplaintRequest is the request body for filing a complaint
type FileComplaintRequest struct {
	Description string `json:"description" binding:"required,max=1000"`
}

// UpdateComplaintRequest is the request body for a status change
type UpdateComplaintRequest struct {
	Status string `json:"status" binding:"required,oneof=pending under_review completed"`
}

// ComplaintHandler handles complaint HTTP requests
type ComplaintHandler struct {
	BaseHandler
	complaintService *appsupport.ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *appsupport.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
	}
}

// File records a complaint for the caller
func (h *ComplaintHandler) File(c *gin.Context) {
	var req FileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.complaintService.File(c.Request.Context(), principal, appsupport.FileComplaintInput{
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListOwned returns the caller's complaints
func (h *ComplaintHandler) ListOwned(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	results, err := h.complaintService.ListOwned(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// ListAll returns every complaint with its author
func (h *ComplaintHandler) ListAll(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	results, err := h.complaintService.ListAll(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// UpdateStatus moves a complaint to a new status
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid complaint ID")
		return
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid complaint ID")
		return
	}

	var req UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.complaintService.UpdateStatus(c.Request.Context(), principal, appsupport.UpdateComplaintInput{
		ComplaintID: id,
		Status:      req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
