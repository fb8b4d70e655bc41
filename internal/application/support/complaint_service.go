package support

import (
	"context"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/ebilling/backend/internal/domain/support"
	"go.uber.org/zap"
)

// ComplaintService handles the complaint workflow: users file, admins
// review and move status.
type ComplaintService struct {
	complaintRepo support.ComplaintRepository
	logger        *zap.Logger
}

// NewComplaintService creates a new complaint service
func NewComplaintService(complaintRepo support.ComplaintRepository, logger *zap.Logger) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		logger:        logger,
	}
}

// File records a complaint for the caller, starting in pending
func (s *ComplaintService) File(ctx context.Context, principal shared.Principal, input FileComplaintInput) (*ComplaintResult, error) {
	complaint, err := support.NewComplaint(principal.ID, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.complaintRepo.Save(ctx, complaint); err != nil {
		return nil, err
	}

	s.logger.Info("Complaint filed",
		zap.String("complaint_id", complaint.ID.String()),
		zap.String("account_id", principal.ID.String()))

	result := toComplaintResult(complaint)
	return &result, nil
}

// ListOwned returns the caller's complaints, newest first
func (s *ComplaintService) ListOwned(ctx context.Context, principal shared.Principal) ([]ComplaintResult, error) {
	complaints, err := s.complaintRepo.FindByAccount(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	results := make([]ComplaintResult, len(complaints))
	for i, c := range complaints {
		results[i] = toComplaintResult(&c)
	}
	return results, nil
}

// ListAll returns every complaint, newest first, with its author
func (s *ComplaintService) ListAll(ctx context.Context, principal shared.Principal) ([]ComplaintWithAuthor, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrUnauthorized
	}

	details, err := s.complaintRepo.FindAllDetailed(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]ComplaintWithAuthor, len(details))
	for i, detail := range details {
		results[i] = ComplaintWithAuthor{
			ComplaintResult: toComplaintResult(&detail.Complaint),
			Author: AuthorInfo{
				ID:    detail.Account.ID,
				Name:  detail.Account.Name,
				Email: detail.Account.Email,
			},
		}
	}
	return results, nil
}

// UpdateStatus moves a complaint to a new status and records the acting
// admin. Any enumerated status may follow any other; an unknown status
// leaves the stored complaint untouched.
func (s *ComplaintService) UpdateStatus(ctx context.Context, principal shared.Principal, input UpdateComplaintInput) (*ComplaintResult, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrUnauthorized
	}

	complaint, err := s.complaintRepo.FindByID(ctx, input.ComplaintID)
	if err != nil {
		return nil, err
	}

	if err := complaint.SetStatus(support.ComplaintStatus(input.Status), principal.ID); err != nil {
		return nil, err
	}

	if err := s.complaintRepo.Save(ctx, complaint); err != nil {
		return nil, err
	}

	s.logger.Info("Complaint status updated",
		zap.String("complaint_id", complaint.ID.String()),
		zap.String("status", input.Status),
		zap.String("admin_id", principal.ID.String()))

	result := toComplaintResult(complaint)
	return &result, nil
}
