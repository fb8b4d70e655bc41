package persistence

import (
	"context"
	"errors"

	"github.com/ebilling/backend/internal/domain/identity"
	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/ebilling/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds an account by its email
func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*identity.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all accounts ordered by name
func (r *GormAccountRepository) FindAll(ctx context.Context) ([]identity.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]identity.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// ExistsByEmail checks if an account with the given email exists
func (r *GormAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists an account (create or update)
func (r *GormAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	model := models.AccountModelFromDomain(account)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// DeleteCascade removes the account together with every record it
// transitively owns, inside one transaction. Deletion order runs from
// the leaves of the ownership graph up to the account row so that no
// step strands children: invoices, payments, consumptions, bills,
// complaints, connections, account.
func (r *GormAccountRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		connectionIDs := tx.Model(&models.ConnectionModel{}).
			Select("id").Where("account_id = ?", id)
		billIDs := tx.Model(&models.BillModel{}).
			Select("id").Where("connection_id IN (?)", connectionIDs)
		paymentIDs := tx.Model(&models.PaymentModel{}).
			Select("id").Where("bill_id IN (?)", billIDs)

		if err := tx.Where("payment_id IN (?)", paymentIDs).
			Delete(&models.InvoiceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id IN (?)", billIDs).
			Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("connection_id IN (?)", connectionIDs).
			Delete(&models.ConsumptionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("connection_id IN (?)", connectionIDs).
			Delete(&models.BillModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).
			Delete(&models.ComplaintModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).
			Delete(&models.ConnectionModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.AccountModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
