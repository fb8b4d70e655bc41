package handler

import (
	"time"

	appbilling "github.com/ebilling/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBillRequest is the request body for issuing a bill
type CreateBillRequest struct {
	ConnectionID  uuid.UUID       `json:"connection_id" binding:"required"`
	UnitsConsumed decimal.Decimal `json:"units_consumed" binding:"required"`
	DueDate       time.Time       `json:"due_date" binding:"required"`
}

// ConsumptionQuery is the query string for the consumption listing
type ConsumptionQuery struct {
	ConnectionID string `form:"connection_id" binding:"required,uuid"`
}

// BillHandler handles billing HTTP requests
type BillHandler struct {
	BaseHandler
	billingService *appbilling.BillingService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *appbilling.BillingService) *BillHandler {
	return &BillHandler{
		billingService: billingService,
	}
}

// Create issues a bill for units consumed on a connection
func (h *BillHandler) Create(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.billingService.CreateBill(c.Request.Context(), principal, appbilling.CreateBillInput{
		ConnectionID:  req.ConnectionID,
		UnitsConsumed: req.UnitsConsumed,
		DueDate:       req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListAll returns every bill with connection, owner and status
func (h *BillHandler) ListAll(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	results, err := h.billingService.ListAll(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// ListOwned returns the caller's bills
func (h *BillHandler) ListOwned(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	results, err := h.billingService.ListOwned(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// ListConsumption returns recent readings for a connection the caller owns
func (h *BillHandler) ListConsumption(c *gin.Context) {
	var query ConsumptionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "connection_id is required")
		return
	}
	connectionID, err := uuid.Parse(query.ConnectionID)
	if err != nil {
		h.BadRequest(c, "Invalid connection ID")
		return
	}

	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	results, err := h.billingService.ListConsumption(c.Request.Context(), principal, connectionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}
