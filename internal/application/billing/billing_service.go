package billing

import (
	"context"
	"time"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/ebilling/backend/internal/domain/identity"
	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// consumptionWindow bounds how far back the consumption listing reads.
const consumptionWindow = 6 * 30 * 24 * time.Hour

// BillingService issues bills and serves the billing ledger
type BillingService struct {
	billRepo        billing.BillRepository
	connectionRepo  billing.ConnectionRepository
	consumptionRepo billing.ConsumptionRepository
	accountRepo     identity.AccountRepository
	logger          *zap.Logger
}

// NewBillingService creates a new billing service
func NewBillingService(
	billRepo billing.BillRepository,
	connectionRepo billing.ConnectionRepository,
	consumptionRepo billing.ConsumptionRepository,
	accountRepo identity.AccountRepository,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		billRepo:        billRepo,
		connectionRepo:  connectionRepo,
		consumptionRepo: consumptionRepo,
		accountRepo:     accountRepo,
		logger:          logger,
	}
}

// CreateBill issues a bill for units consumed on a connection. The
// amount is computed from the connection's tariff rate at this moment
// and never recalculated; the backing consumption record is written in
// the same transaction as the bill.
func (s *BillingService) CreateBill(ctx context.Context, principal shared.Principal, input CreateBillInput) (*BillResult, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrUnauthorized
	}

	conn, err := s.connectionRepo.FindByID(ctx, input.ConnectionID)
	if err != nil {
		return nil, err
	}

	bill, consumption, err := billing.NewBill(conn, input.UnitsConsumed, input.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.CreateWithConsumption(ctx, bill, consumption); err != nil {
		s.logger.Error("Failed to create bill", zap.Error(err))
		return nil, err
	}

	account, err := s.accountRepo.FindByID(ctx, conn.AccountID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Bill created",
		zap.String("bill_id", bill.ID.String()),
		zap.String("connection_id", conn.ID.String()),
		zap.String("amount", bill.Amount.String()))

	result := toBillResult(billing.BillDetail{
		Bill:       *bill,
		Connection: *conn,
		Account:    billing.AccountSummary{ID: account.ID, Name: account.Name, Email: account.Email},
	})
	return &result, nil
}

// ListAll returns every bill, newest first, with connection, owner and
// payment status
func (s *BillingService) ListAll(ctx context.Context, principal shared.Principal) ([]BillResult, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrUnauthorized
	}

	details, err := s.billRepo.FindAllDetailed(ctx)
	if err != nil {
		return nil, err
	}
	return toBillResults(details), nil
}

// ListOwned returns the caller's bills, newest first
func (s *BillingService) ListOwned(ctx context.Context, principal shared.Principal) ([]BillResult, error) {
	details, err := s.billRepo.FindDetailedByAccount(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	return toBillResults(details), nil
}

// ListConsumption returns recent readings for a connection the caller
// owns, oldest first. A connection that is missing or owned by someone
// else is reported as not found.
func (s *BillingService) ListConsumption(ctx context.Context, principal shared.Principal, connectionID uuid.UUID) ([]ConsumptionResult, error) {
	conn, err := s.connectionRepo.FindByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.AccountID != principal.ID {
		return nil, shared.ErrNotFound
	}

	since := time.Now().Add(-consumptionWindow)
	consumptions, err := s.consumptionRepo.FindByConnectionSince(ctx, connectionID, since)
	if err != nil {
		return nil, err
	}

	results := make([]ConsumptionResult, len(consumptions))
	for i, c := range consumptions {
		results[i] = ConsumptionResult{
			ID:           c.ID,
			ConnectionID: c.ConnectionID,
			Units:        c.Units,
			ReadingDate:  c.ReadingDate,
		}
	}
	return results, nil
}

func toBillResults(details []billing.BillDetail) []BillResult {
	results := make([]BillResult, len(details))
	for i, detail := range details {
		results[i] = toBillResult(detail)
	}
	return results
}
