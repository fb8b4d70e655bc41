package persistence

import (
	"context"
	"time"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/ebilling/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormConsumptionRepository implements ConsumptionRepository using GORM
type GormConsumptionRepository struct {
	db *gorm.DB
}

// NewGormConsumptionRepository creates a new GormConsumptionRepository
func NewGormConsumptionRepository(db *gorm.DB) *GormConsumptionRepository {
	return &GormConsumptionRepository{db: db}
}

// FindByConnectionSince returns readings for a connection taken on or
// after since, oldest first
func (r *GormConsumptionRepository) FindByConnectionSince(ctx context.Context, connectionID uuid.UUID, since time.Time) ([]billing.Consumption, error) {
	var consumptionModels []models.ConsumptionModel
	if err := r.db.WithContext(ctx).
		Where("connection_id = ? AND reading_date >= ?", connectionID, since).
		Order("reading_date ASC").
		Find(&consumptionModels).Error; err != nil {
		return nil, err
	}

	consumptions := make([]billing.Consumption, len(consumptionModels))
	for i, model := range consumptionModels {
		consumptions[i] = *model.ToDomain()
	}
	return consumptions, nil
}
