package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/ebilling/backend/internal/domain/support"
	"github.com/ebilling/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormComplaintRepository implements ComplaintRepository using GORM
type GormComplaintRepository struct {
	db *gorm.DB
}

// NewGormComplaintRepository creates a new GormComplaintRepository
func NewGormComplaintRepository(db *gorm.DB) *GormComplaintRepository {
	return &GormComplaintRepository{db: db}
}

// FindByID finds a complaint by its ID
func (r *GormComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*support.Complaint, error) {
	var model models.ComplaintModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccount returns the account's complaints, newest first
func (r *GormComplaintRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]support.Complaint, error) {
	var complaintModels []models.ComplaintModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&complaintModels).Error; err != nil {
		return nil, err
	}

	complaints := make([]support.Complaint, len(complaintModels))
	for i, model := range complaintModels {
		complaints[i] = *model.ToDomain()
	}
	return complaints, nil
}

// complaintDetailRow is the flat scan target for the complaint detail join.
type complaintDetailRow struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	AccountID    uuid.UUID
	Description  string
	Status       support.ComplaintStatus
	AdminID      *uuid.UUID
	AccountName  string
	AccountEmail string
}

// FindAllDetailed returns every complaint, newest first, joined with
// its author
func (r *GormComplaintRepository) FindAllDetailed(ctx context.Context) ([]support.ComplaintDetail, error) {
	var rows []complaintDetailRow
	if err := r.db.WithContext(ctx).
		Model(&models.ComplaintModel{}).
		Select(`complaints.id, complaints.created_at, complaints.updated_at,
			complaints.account_id, complaints.description, complaints.status, complaints.admin_id,
			accounts.name AS account_name, accounts.email AS account_email`).
		Joins("JOIN accounts ON accounts.id = complaints.account_id").
		Order("complaints.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	details := make([]support.ComplaintDetail, len(rows))
	for i, row := range rows {
		details[i] = support.ComplaintDetail{
			Complaint: support.Complaint{
				BaseEntity: shared.BaseEntity{
					ID:        row.ID,
					CreatedAt: row.CreatedAt,
					UpdatedAt: row.UpdatedAt,
				},
				AccountID:   row.AccountID,
				Description: row.Description,
				Status:      row.Status,
				AdminID:     row.AdminID,
			},
			Account: support.AuthorSummary{
				ID:    row.AccountID,
				Name:  row.AccountName,
				Email: row.AccountEmail,
			},
		}
	}
	return details, nil
}

// Save persists a complaint (create or update)
func (r *GormComplaintRepository) Save(ctx context.Context, complaint *support.Complaint) error {
	return r.db.WithContext(ctx).Save(models.ComplaintModelFromDomain(complaint)).Error
}
