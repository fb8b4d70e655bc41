package billing

import (
	"fmt"
	"time"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Invoice is the receipt issued for a payment. It is written in the
// same transaction as the payment and is the first record removed when
// an account's graph is cascade-deleted.
type Invoice struct {
	shared.BaseEntity
	PaymentID uuid.UUID
	InvoiceNo string
	IssuedAt  time.Time
}

// NewInvoice issues an invoice for a payment
func NewInvoice(payment *Payment) *Invoice {
	base := shared.NewBaseEntity()
	return &Invoice{
		BaseEntity: base,
		PaymentID:  payment.ID,
		InvoiceNo:  fmt.Sprintf("INV-%s-%s", base.CreatedAt.Format("20060102"), base.ID.String()[:8]),
		IssuedAt:   base.CreatedAt,
	}
}
