package handler

import (
	appbilling "github.com/ebilling/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateConnectionRequest is the request body for creating a connection
type CreateConnectionRequest struct {
	AccountID  uuid.UUID       `json:"account_id" binding:"required"`
	MeterNo    string          `json:"meter_no" binding:"required,max=50"`
	TariffType string          `json:"tariff_type" binding:"required,tariff_type"`
	TariffRate decimal.Decimal `json:"tariff_rate" binding:"required"`
}

// ConnectionHandler handles connection management HTTP requests
type ConnectionHandler struct {
	BaseHandler
	connectionService *appbilling.ConnectionService
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(connectionService *appbilling.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{
		connectionService: connectionService,
	}
}

// Create hooks up a new metered connection for an account
func (h *ConnectionHandler) Create(c *gin.Context) {
	var req CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.connectionService.Create(c.Request.Context(), principal, appbilling.CreateConnectionInput{
		AccountID:  req.AccountID,
		MeterNo:    req.MeterNo,
		TariffType: req.TariffType,
		TariffRate: req.TariffRate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListAll returns every connection with its owner
func (h *ConnectionHandler) ListAll(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	results, err := h.connectionService.ListAll(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// ListOwned returns the caller's connections
func (h *ConnectionHandler) ListOwned(c *gin.Context) {
	principal, ok := getPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	results, err := h.connectionService.ListOwned(c.Request.Context(), principal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}
