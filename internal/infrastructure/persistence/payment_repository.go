package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/ebilling/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// CreateWithInvoice persists a payment and its invoice in one
// transaction. The unique index on payments.bill_id is the last word on
// double payment: when two requests race past the existence check, the
// second insert fails here and surfaces as shared.ErrAlreadyExists.
func (r *GormPaymentRepository) CreateWithInvoice(ctx context.Context, payment *billing.Payment, invoice *billing.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.PaymentModelFromDomain(payment)).Error; err != nil {
			return err
		}
		return tx.Create(models.InvoiceModelFromDomain(invoice)).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// ExistsByBillID checks if a payment exists for the given bill
func (r *GormPaymentRepository) ExistsByBillID(ctx context.Context, billID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("bill_id = ?", billID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// paymentDetailRow is the flat scan target for the payment detail join.
type paymentDetailRow struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	BillID    uuid.UUID
	Amount    decimal.Decimal
	Status    billing.PaymentStatus
	DueDate   time.Time
	MeterNo   string
	InvoiceNo string
}

// FindDetailedByAccount returns the account's payments, newest first,
// joined with the bill's due date, the connection's meter number and
// the invoice number
func (r *GormPaymentRepository) FindDetailedByAccount(ctx context.Context, accountID uuid.UUID) ([]billing.PaymentDetail, error) {
	var rows []paymentDetailRow
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select(`payments.id, payments.created_at, payments.updated_at, payments.bill_id,
			payments.amount, payments.status, bills.due_date, connections.meter_no,
			invoices.invoice_no`).
		Joins("JOIN bills ON bills.id = payments.bill_id").
		Joins("JOIN connections ON connections.id = bills.connection_id").
		Joins("JOIN invoices ON invoices.payment_id = payments.id").
		Where("connections.account_id = ?", accountID).
		Order("payments.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	details := make([]billing.PaymentDetail, len(rows))
	for i, row := range rows {
		details[i] = billing.PaymentDetail{
			Payment: billing.Payment{
				BaseEntity: shared.BaseEntity{
					ID:        row.ID,
					CreatedAt: row.CreatedAt,
					UpdatedAt: row.UpdatedAt,
				},
				BillID: row.BillID,
				Amount: row.Amount,
				Status: row.Status,
			},
			DueDate:   row.DueDate,
			MeterNo:   row.MeterNo,
			InvoiceNo: row.InvoiceNo,
		}
	}
	return details, nil
}
