package billing

import (
	"context"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/ebilling/backend/internal/domain/identity"
	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ConnectionService handles electricity connection management
type ConnectionService struct {
	connectionRepo billing.ConnectionRepository
	accountRepo    identity.AccountRepository
	logger         *zap.Logger
}

// NewConnectionService creates a new connection service
func NewConnectionService(
	connectionRepo billing.ConnectionRepository,
	accountRepo identity.AccountRepository,
	logger *zap.Logger,
) *ConnectionService {
	return &ConnectionService{
		connectionRepo: connectionRepo,
		accountRepo:    accountRepo,
		logger:         logger,
	}
}

// Create hooks up a new metered connection for an account
func (s *ConnectionService) Create(ctx context.Context, principal shared.Principal, input CreateConnectionInput) (*ConnectionResult, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrUnauthorized
	}

	if _, err := s.accountRepo.FindByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	conn, err := billing.NewConnection(input.AccountID, input.MeterNo, billing.TariffType(input.TariffType), input.TariffRate)
	if err != nil {
		return nil, err
	}

	taken, err := s.connectionRepo.ExistsByMeterNo(ctx, conn.MeterNo)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A connection with this meter number already exists")
	}

	if err := s.connectionRepo.Save(ctx, conn); err != nil {
		return nil, err
	}

	s.logger.Info("Connection created",
		zap.String("connection_id", conn.ID.String()),
		zap.String("account_id", conn.AccountID.String()),
		zap.String("meter_no", conn.MeterNo))

	result := toConnectionResult(conn)
	return &result, nil
}

// ListAll returns every connection, newest first, with its owner
func (s *ConnectionService) ListAll(ctx context.Context, principal shared.Principal) ([]ConnectionWithOwner, error) {
	if !principal.IsAdmin() {
		return nil, shared.ErrUnauthorized
	}

	connections, err := s.connectionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	owners := make(map[uuid.UUID]OwnerInfo, len(accounts))
	for _, account := range accounts {
		owners[account.ID] = OwnerInfo{ID: account.ID, Name: account.Name, Email: account.Email}
	}

	results := make([]ConnectionWithOwner, len(connections))
	for i, conn := range connections {
		results[i] = ConnectionWithOwner{
			ConnectionResult: toConnectionResult(&conn),
			Owner:            owners[conn.AccountID],
		}
	}
	return results, nil
}

// ListOwned returns the caller's connections, newest first
func (s *ConnectionService) ListOwned(ctx context.Context, principal shared.Principal) ([]ConnectionResult, error) {
	connections, err := s.connectionRepo.FindByAccount(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	results := make([]ConnectionResult, len(connections))
	for i, conn := range connections {
		results[i] = toConnectionResult(&conn)
	}
	return results, nil
}
