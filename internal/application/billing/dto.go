package billing

import (
	"time"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwnerInfo identifies the account owning a connection or bill
type OwnerInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// CreateConnectionInput contains the input for creating a connection
type CreateConnectionInput struct {
	AccountID  uuid.UUID
	MeterNo    string
	TariffType string
	TariffRate decimal.Decimal
}

// ConnectionResult contains connection information returned to callers
type ConnectionResult struct {
	ID         uuid.UUID       `json:"id"`
	AccountID  uuid.UUID       `json:"account_id"`
	MeterNo    string          `json:"meter_no"`
	TariffType string          `json:"tariff_type"`
	TariffRate decimal.Decimal `json:"tariff_rate"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ConnectionWithOwner is a connection joined with its owning account
type ConnectionWithOwner struct {
	ConnectionResult
	Owner OwnerInfo `json:"owner"`
}

// CreateBillInput contains the input for issuing a bill
type CreateBillInput struct {
	ConnectionID  uuid.UUID
	UnitsConsumed decimal.Decimal
	DueDate       time.Time
}

// BillResult contains bill information returned to callers
type BillResult struct {
	ID           uuid.UUID       `json:"id"`
	ConnectionID uuid.UUID       `json:"connection_id"`
	MeterNo      string          `json:"meter_no"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      time.Time       `json:"due_date"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	Owner        OwnerInfo       `json:"owner"`
}

// PayBillInput contains the input for paying a bill
type PayBillInput struct {
	BillID uuid.UUID
}

// PaymentResult contains payment information returned to callers
type PaymentResult struct {
	ID        uuid.UUID       `json:"id"`
	BillID    uuid.UUID       `json:"bill_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	DueDate   time.Time       `json:"due_date"`
	MeterNo   string          `json:"meter_no"`
	InvoiceNo string          `json:"invoice_no"`
}

// ConsumptionResult contains one meter reading returned to callers
type ConsumptionResult struct {
	ID           uuid.UUID       `json:"id"`
	ConnectionID uuid.UUID       `json:"connection_id"`
	Units        decimal.Decimal `json:"units"`
	ReadingDate  time.Time       `json:"reading_date"`
}

func toConnectionResult(conn *billing.Connection) ConnectionResult {
	return ConnectionResult{
		ID:         conn.ID,
		AccountID:  conn.AccountID,
		MeterNo:    conn.MeterNo,
		TariffType: string(conn.TariffType),
		TariffRate: conn.TariffRate,
		CreatedAt:  conn.CreatedAt,
	}
}

func toBillResult(detail billing.BillDetail) BillResult {
	return BillResult{
		ID:           detail.Bill.ID,
		ConnectionID: detail.Bill.ConnectionID,
		MeterNo:      detail.Connection.MeterNo,
		Amount:       detail.Bill.Amount,
		DueDate:      detail.Bill.DueDate,
		Status:       detail.DisplayStatus(),
		CreatedAt:    detail.Bill.CreatedAt,
		Owner: OwnerInfo{
			ID:    detail.Account.ID,
			Name:  detail.Account.Name,
			Email: detail.Account.Email,
		},
	}
}
