package identity

import (
	"context"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/ebilling/backend/internal/domain/identity"
	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService handles administration of portal user accounts
type AccountService struct {
	accountRepo    identity.AccountRepository
	connectionRepo billing.ConnectionRepository
	billRepo       billing.BillRepository
	logger         *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo identity.AccountRepository,
	connectionRepo billing.ConnectionRepository,
	billRepo billing.BillRepository,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo:    accountRepo,
		connectionRepo: connectionRepo,
		billRepo:       billRepo,
		logger:         logger,
	}
}

// Register creates a new portal user account
func (s *AccountService) Register(ctx context.Context, principal shared.Principal, input RegisterAccountInput) (*AccountInfo, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrUnauthorized
	}

	account, err := identity.NewAccount(input.Name, input.Email, input.Phone, input.Password)
	if err != nil {
		return nil, err
	}

	exists, err := s.accountRepo.ExistsByEmail(ctx, account.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("email", account.Email))

	info := toAccountInfo(account)
	return &info, nil
}

// List returns every account ordered by name, each with its connections
// and their bills
func (s *AccountService) List(ctx context.Context, principal shared.Principal) ([]AccountOverview, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrUnauthorized
	}

	accounts, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	connections, err := s.connectionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	bills, err := s.billRepo.FindAllDetailed(ctx)
	if err != nil {
		return nil, err
	}

	billsByConnection := make(map[uuid.UUID][]OverviewBill)
	for _, detail := range bills {
		billsByConnection[detail.Bill.ConnectionID] = append(billsByConnection[detail.Bill.ConnectionID], OverviewBill{
			ID:      detail.Bill.ID,
			Amount:  detail.Bill.Amount,
			DueDate: detail.Bill.DueDate,
			Status:  detail.DisplayStatus(),
		})
	}

	connectionsByAccount := make(map[uuid.UUID][]OverviewConnection)
	for _, conn := range connections {
		overview := OverviewConnection{
			ID:         conn.ID,
			MeterNo:    conn.MeterNo,
			TariffType: string(conn.TariffType),
			TariffRate: conn.TariffRate,
			Bills:      billsByConnection[conn.ID],
		}
		if overview.Bills == nil {
			overview.Bills = []OverviewBill{}
		}
		connectionsByAccount[conn.AccountID] = append(connectionsByAccount[conn.AccountID], overview)
	}

	overviews := make([]AccountOverview, len(accounts))
	for i, account := range accounts {
		overview := AccountOverview{
			AccountInfo: toAccountInfo(&account),
			Connections: connectionsByAccount[account.ID],
		}
		if overview.Connections == nil {
			overview.Connections = []OverviewConnection{}
		}
		overviews[i] = overview
	}
	return overviews, nil
}

// Delete removes an account and everything it owns. The read comes
// first so a missing account surfaces as not found instead of a silent
// zero-row delete.
func (s *AccountService) Delete(ctx context.Context, principal shared.Principal, id uuid.UUID) error {
	if !principal.IsAdmin() {
		return shared.ErrUnauthorized
	}

	if _, err := s.accountRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.accountRepo.DeleteCascade(ctx, id); err != nil {
		s.logger.Error("Cascade delete failed",
			zap.String("account_id", id.String()), zap.Error(err))
		return err
	}

	s.logger.Info("Account deleted with owned records",
		zap.String("account_id", id.String()),
		zap.String("deleted_by", principal.ID.String()))
	return nil
}

func toAccountInfo(account *identity.Account) AccountInfo {
	return AccountInfo{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Phone:     account.Phone,
		CreatedAt: account.CreatedAt,
	}
}
