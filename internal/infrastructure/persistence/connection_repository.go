package persistence

import (
	"context"
	"errors"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/ebilling/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormConnectionRepository implements ConnectionRepository using GORM
type GormConnectionRepository struct {
	db *gorm.DB
}

// NewGormConnectionRepository creates a new GormConnectionRepository
func NewGormConnectionRepository(db *gorm.DB) *GormConnectionRepository {
	return &GormConnectionRepository{db: db}
}

// FindByID finds a connection by its ID
func (r *GormConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Connection, error) {
	var model models.ConnectionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every connection, newest first
func (r *GormConnectionRepository) FindAll(ctx context.Context) ([]billing.Connection, error) {
	var connectionModels []models.ConnectionModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&connectionModels).Error; err != nil {
		return nil, err
	}
	return toConnections(connectionModels), nil
}

// FindByAccount returns the connections owned by one account, newest first
func (r *GormConnectionRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]billing.Connection, error) {
	var connectionModels []models.ConnectionModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&connectionModels).Error; err != nil {
		return nil, err
	}
	return toConnections(connectionModels), nil
}

// ExistsByMeterNo checks if a connection with the given meter number exists
func (r *GormConnectionRepository) ExistsByMeterNo(ctx context.Context, meterNo string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ConnectionModel{}).
		Where("meter_no = ?", meterNo).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists a connection (create or update). A meter number already
// in use surfaces as shared.ErrAlreadyExists.
func (r *GormConnectionRepository) Save(ctx context.Context, connection *billing.Connection) error {
	model := models.ConnectionModelFromDomain(connection)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func toConnections(connectionModels []models.ConnectionModel) []billing.Connection {
	connections := make([]billing.Connection, len(connectionModels))
	for i, model := range connectionModels {
		connections[i] = *model.ToDomain()
	}
	return connections
}
