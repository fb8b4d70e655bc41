package support

import (
	"context"
	"strings"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ComplaintStatus represents the status of a complaint
type ComplaintStatus string

const (
	ComplaintStatusPending     ComplaintStatus = "pending"
	ComplaintStatusUnderReview ComplaintStatus = "under_review"
	ComplaintStatusCompleted   ComplaintStatus = "completed"
)

// IsValid reports whether the status is one of the enumerated values
func (s ComplaintStatus) IsValid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusUnderReview, ComplaintStatusCompleted:
		return true
	}
	return false
}

// Complaint is a user-submitted issue ticket whose status is managed by
// admins. Status changes are only validated against the enumerated set;
// skipping or reverting states is allowed on purpose.
type Complaint struct {
	shared.BaseEntity
	AccountID   uuid.UUID
	Description string
	Status      ComplaintStatus
	AdminID     *uuid.UUID
}

// NewComplaint files a complaint for an account, starting in pending
func NewComplaint(accountID uuid.UUID, description string) (*Complaint, error) {
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	return &Complaint{
		BaseEntity:  shared.NewBaseEntity(),
		AccountID:   accountID,
		Description: description,
		Status:      ComplaintStatusPending,
	}, nil
}

// SetStatus moves the complaint to newStatus and records the admin who
// did it. Any enumerated value is accepted from any current state.
func (c *Complaint) SetStatus(newStatus ComplaintStatus, adminID uuid.UUID) error {
	if !newStatus.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid status")
	}
	c.Status = newStatus
	c.AdminID = &adminID
	c.Touch()
	return nil
}

// ComplaintDetail is the read model for admin complaint listings: the
// complaint joined with its author.
type ComplaintDetail struct {
	Complaint Complaint
	Account   AuthorSummary
}

// AuthorSummary is the author information joined onto complaint listings.
type AuthorSummary struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// ComplaintRepository defines persistence operations for complaints
type ComplaintRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Complaint, error)
	// FindByAccount returns the account's complaints, newest first.
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]Complaint, error)
	// FindAllDetailed returns every complaint, newest first, joined with
	// its author.
	FindAllDetailed(ctx context.Context) ([]ComplaintDetail, error)
	Save(ctx context.Context, complaint *Complaint) error
}
