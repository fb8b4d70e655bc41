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

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// CreateWithConsumption persists a bill and its consumption record in one transaction
func (r *GormBillRepository) CreateWithConsumption(ctx context.Context, bill *billing.Bill, consumption *billing.Consumption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.BillModelFromDomain(bill)).Error; err != nil {
			return err
		}
		return tx.Create(models.ConsumptionModelFromDomain(consumption)).Error
	})
}

// FindByID finds a bill by its ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOwned returns the bill only when its connection belongs to the
// given account. A bill that exists but is owned by someone else comes
// back as shared.ErrNotFound, same as a bill that does not exist.
func (r *GormBillRepository) FindOwned(ctx context.Context, id, accountID uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Select("bills.*").
		Joins("JOIN connections ON connections.id = bills.connection_id").
		Where("bills.id = ? AND connections.account_id = ?", id, accountID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// billDetailRow is the flat scan target for the bill detail join.
// Payment columns are nullable since unpaid bills have no payment row.
type billDetailRow struct {
	// bill
	ID           uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ConnectionID uuid.UUID
	Amount       decimal.Decimal
	DueDate      time.Time

	// connection
	ConnAccountID  uuid.UUID
	ConnMeterNo    string
	ConnTariffType billing.TariffType
	ConnTariffRate decimal.Decimal
	ConnCreatedAt  time.Time
	ConnUpdatedAt  time.Time

	// owner
	AccountName  string
	AccountEmail string

	// payment (nullable)
	PaymentID        *uuid.UUID
	PaymentAmount    *decimal.Decimal
	PaymentStatus    *billing.PaymentStatus
	PaymentCreatedAt *time.Time
	PaymentUpdatedAt *time.Time
}

const billDetailSelect = `
	bills.id, bills.created_at, bills.updated_at, bills.connection_id, bills.amount, bills.due_date,
	connections.account_id AS conn_account_id, connections.meter_no AS conn_meter_no,
	connections.tariff_type AS conn_tariff_type, connections.tariff_rate AS conn_tariff_rate,
	connections.created_at AS conn_created_at, connections.updated_at AS conn_updated_at,
	accounts.name AS account_name, accounts.email AS account_email,
	payments.id AS payment_id, payments.amount AS payment_amount, payments.status AS payment_status,
	payments.created_at AS payment_created_at, payments.updated_at AS payment_updated_at`

func (r *GormBillRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Select(billDetailSelect).
		Joins("JOIN connections ON connections.id = bills.connection_id").
		Joins("JOIN accounts ON accounts.id = connections.account_id").
		Joins("LEFT JOIN payments ON payments.bill_id = bills.id").
		Order("bills.created_at DESC")
}

// FindAllDetailed returns every bill, newest first, joined with its
// connection, owner and payment, if any
func (r *GormBillRepository) FindAllDetailed(ctx context.Context) ([]billing.BillDetail, error) {
	var rows []billDetailRow
	if err := r.detailQuery(ctx).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toBillDetails(rows), nil
}

// FindDetailedByAccount returns the account's bills, newest first
func (r *GormBillRepository) FindDetailedByAccount(ctx context.Context, accountID uuid.UUID) ([]billing.BillDetail, error) {
	var rows []billDetailRow
	if err := r.detailQuery(ctx).
		Where("connections.account_id = ?", accountID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toBillDetails(rows), nil
}

func toBillDetails(rows []billDetailRow) []billing.BillDetail {
	details := make([]billing.BillDetail, len(rows))
	for i, row := range rows {
		detail := billing.BillDetail{
			Bill: billing.Bill{
				BaseEntity: shared.BaseEntity{
					ID:        row.ID,
					CreatedAt: row.CreatedAt,
					UpdatedAt: row.UpdatedAt,
				},
				ConnectionID: row.ConnectionID,
				Amount:       row.Amount,
				DueDate:      row.DueDate,
			},
			Connection: billing.Connection{
				BaseEntity: shared.BaseEntity{
					ID:        row.ConnectionID,
					CreatedAt: row.ConnCreatedAt,
					UpdatedAt: row.ConnUpdatedAt,
				},
				AccountID:  row.ConnAccountID,
				MeterNo:    row.ConnMeterNo,
				TariffType: row.ConnTariffType,
				TariffRate: row.ConnTariffRate,
			},
			Account: billing.AccountSummary{
				ID:    row.ConnAccountID,
				Name:  row.AccountName,
				Email: row.AccountEmail,
			},
		}
		if row.PaymentID != nil {
			detail.Payment = &billing.Payment{
				BaseEntity: shared.BaseEntity{
					ID:        *row.PaymentID,
					CreatedAt: *row.PaymentCreatedAt,
					UpdatedAt: *row.PaymentUpdatedAt,
				},
				BillID: row.ID,
				Amount: *row.PaymentAmount,
				Status: *row.PaymentStatus,
			}
		}
		details[i] = detail
	}
	return details
}
