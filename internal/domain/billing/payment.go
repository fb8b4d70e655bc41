package billing

import (
	"context"
	"time"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment is a settlement record against exactly one bill. The unique
// index on bill_id is the authoritative guard against double payment:
// two concurrent pay requests can both pass the existence check, but
// only one insert commits.
type Payment struct {
	shared.BaseEntity
	BillID uuid.UUID
	Amount decimal.Decimal
	Status PaymentStatus
}

// NewPayment settles the given bill in full. Payments are terminal:
// there is no refund, retry or partial-payment path.
func NewPayment(bill *Bill) *Payment {
	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		BillID:     bill.ID,
		Amount:     bill.Amount,
		Status:     PaymentStatusPaid,
	}
}

// PaymentDetail is the read model for payment listings: the payment
// joined with its bill's due date, the connection's meter number and
// the invoice issued for it.
type PaymentDetail struct {
	Payment   Payment
	DueDate   time.Time
	MeterNo   string
	InvoiceNo string
}

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	// CreateWithInvoice persists a payment and its invoice in one
	// transaction. A payment already existing for the bill surfaces as
	// shared.ErrAlreadyExists, whether caught by the prior existence
	// check or by the unique constraint on bill_id.
	CreateWithInvoice(ctx context.Context, payment *Payment, invoice *Invoice) error
	ExistsByBillID(ctx context.Context, billID uuid.UUID) (bool, error)
	// FindDetailedByAccount returns the account's payments, newest first.
	FindDetailedByAccount(ctx context.Context, accountID uuid.UUID) ([]PaymentDetail, error)
}
