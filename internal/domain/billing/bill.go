package billing

import (
	"context"
	"time"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Display statuses for a bill. UNPAID is synthesized for bills without a
// payment row; every other value is the payment's stored status.
const (
	BillStatusUnpaid = "UNPAID"
)

// Bill is a billing statement for a connection. Its amount is computed
// from the connection's tariff rate at creation time and is immutable:
// changing the tariff later never touches issued bills.
type Bill struct {
	shared.BaseEntity
	ConnectionID uuid.UUID
	Amount       decimal.Decimal
	DueDate      time.Time
}

// NewBill issues a bill for units consumed on the given connection,
// together with the consumption record that backs it. The two are
// always persisted in one transaction.
func NewBill(conn *Connection, unitsConsumed decimal.Decimal, dueDate time.Time) (*Bill, *Consumption, error) {
	if dueDate.IsZero() {
		return nil, nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}
	amount, err := conn.BillAmount(unitsConsumed)
	if err != nil {
		return nil, nil, err
	}
	consumption, err := NewConsumption(conn.ID, unitsConsumed)
	if err != nil {
		return nil, nil, err
	}

	bill := &Bill{
		BaseEntity:   shared.NewBaseEntity(),
		ConnectionID: conn.ID,
		Amount:       amount,
		DueDate:      dueDate,
	}
	return bill, consumption, nil
}

// AccountSummary is the owner information joined onto bill and
// connection listings.
type AccountSummary struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// BillDetail is the read model for bill listings: the bill joined with
// its connection, the owning account and the payment, if any.
type BillDetail struct {
	Bill       Bill
	Connection Connection
	Account    AccountSummary
	Payment    *Payment
}

// DisplayStatus resolves the status shown for the bill: UNPAID without
// a payment, otherwise the payment's stored status.
func (d *BillDetail) DisplayStatus() string {
	if d.Payment == nil {
		return BillStatusUnpaid
	}
	return string(d.Payment.Status)
}

// BillRepository defines persistence operations for bills
type BillRepository interface {
	// CreateWithConsumption persists a bill and its consumption record in
	// one transaction.
	CreateWithConsumption(ctx context.Context, bill *Bill, consumption *Consumption) error
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	// FindOwned returns the bill only when it belongs, via its
	// connection, to the given account. A foreign bill is reported as
	// not found so callers cannot probe other accounts' bills.
	FindOwned(ctx context.Context, id, accountID uuid.UUID) (*Bill, error)
	// FindAllDetailed returns every bill, newest first, joined with
	// connection, owner and payment.
	FindAllDetailed(ctx context.Context) ([]BillDetail, error)
	// FindDetailedByAccount returns the account's bills, newest first.
	FindDetailedByAccount(ctx context.Context, accountID uuid.UUID) ([]BillDetail, error)
}
