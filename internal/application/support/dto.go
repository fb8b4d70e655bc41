package support

import (
	"time"

	"github.com/ebilling/backend/internal/domain/support"
	"github.com/google/uuid"
)

// FileComplaintInput contains the input for filing a complaint
type FileComplaintInput struct {
	Description string
}

// UpdateComplaintInput contains the input for a status change
type UpdateComplaintInput struct {
	ComplaintID uuid.UUID
	Status      string
}

// AuthorInfo identifies the account that filed a complaint
type AuthorInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ComplaintResult contains complaint information returned to callers
type ComplaintResult struct {
	ID          uuid.UUID  `json:"id"`
	AccountID   uuid.UUID  `json:"account_id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AdminID     *uuid.UUID `json:"admin_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ComplaintWithAuthor is a complaint joined with its author
type ComplaintWithAuthor struct {
	ComplaintResult
	Author AuthorInfo `json:"author"`
}

func toComplaintResult(c *support.Complaint) ComplaintResult {
	return ComplaintResult{
		ID:          c.ID,
		AccountID:   c.AccountID,
		Description: c.Description,
		Status:      string(c.Status),
		AdminID:     c.AdminID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
