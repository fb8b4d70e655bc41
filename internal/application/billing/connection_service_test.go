package billing

import (
	"context"
	"testing"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/ebilling/backend/internal/domain/identity"
	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func adminPrincipal() shared.Principal {
	return shared.Principal{ID: uuid.New(), Role: shared.RoleAdmin}
}

func userPrincipal(id uuid.UUID) shared.Principal {
	return shared.Principal{ID: id, Role: shared.RoleUser}
}

func newTestAccount(t *testing.T, name, email string) *identity.Account {
	t.Helper()
	account, err := identity.NewAccount(name, email, "9876543210", "password123")
	require.NoError(t, err)
	return account
}

func newTestConnection(t *testing.T, accountID uuid.UUID, meterNo string, rate float64) *billing.Connection {
	t.Helper()
	conn, err := billing.NewConnection(accountID, meterNo, billing.TariffResidential, decimal.NewFromFloat(rate))
	require.NoError(t, err)
	return conn
}

func TestConnectionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates connection for existing account", func(t *testing.T) {
		connectionRepo := new(MockConnectionRepository)
		accountRepo := new(MockAccountRepository)
		service := NewConnectionService(connectionRepo, accountRepo, zap.NewNop())

		ravi := newTestAccount(t, "Ravi Kumar", "ravi@example.com")
		accountRepo.On("FindByID", ctx, ravi.ID).Return(ravi, nil)
		connectionRepo.On("ExistsByMeterNo", ctx, "MTR-1001").Return(false, nil)
		connectionRepo.On("Save", ctx, mock.AnythingOfType("*billing.Connection")).Return(nil)

		result, err := service.Create(ctx, adminPrincipal(), CreateConnectionInput{
			AccountID:  ravi.ID,
			MeterNo:    "MTR-1001",
			TariffType: "residential",
			TariffRate: decimal.NewFromFloat(5.50),
		})

		require.NoError(t, err)
		assert.Equal(t, ravi.ID, result.AccountID)
		assert.Equal(t, "MTR-1001", result.MeterNo)
		assert.Equal(t, "residential", result.TariffType)
		assert.True(t, result.TariffRate.Equal(decimal.NewFromFloat(5.50)))
		connectionRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown account", func(t *testing.T) {
		connectionRepo := new(MockConnectionRepository)
		accountRepo := new(MockAccountRepository)
		service := NewConnectionService(connectionRepo, accountRepo, zap.NewNop())

		missing := uuid.New()
		accountRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		result, err := service.Create(ctx, adminPrincipal(), CreateConnectionInput{
			AccountID:  missing,
			MeterNo:    "MTR-1002",
			TariffType: "residential",
			TariffRate: decimal.NewFromFloat(5.50),
		})

		assert.Nil(t, result)
		assert.Equal(t, shared.ErrNotFound, err)
		connectionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate meter number", func(t *testing.T) {
		connectionRepo := new(MockConnectionRepository)
		accountRepo := new(MockAccountRepository)
		service := NewConnectionService(connectionRepo, accountRepo, zap.NewNop())

		ravi := newTestAccount(t, "Ravi Kumar", "ravi@example.com")
		accountRepo.On("FindByID", ctx, ravi.ID).Return(ravi, nil)
		connectionRepo.On("ExistsByMeterNo", ctx, "MTR-1001").Return(true, nil)

		result, err := service.Create(ctx, adminPrincipal(), CreateConnectionInput{
			AccountID:  ravi.ID,
			MeterNo:    "MTR-1001",
			TariffType: "residential",
			TariffRate: decimal.NewFromFloat(5.50),
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		connectionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects invalid tariff type before touching repositories", func(t *testing.T) {
		connectionRepo := new(MockConnectionRepository)
		accountRepo := new(MockAccountRepository)
		service := NewConnectionService(connectionRepo, accountRepo, zap.NewNop())

		ravi := newTestAccount(t, "Ravi Kumar", "ravi@example.com")
		accountRepo.On("FindByID", ctx, ravi.ID).Return(ravi, nil)

		result, err := service.Create(ctx, adminPrincipal(), CreateConnectionInput{
			AccountID:  ravi.ID,
			MeterNo:    "MTR-1003",
			TariffType: "hydro",
			TariffRate: decimal.NewFromFloat(5.50),
		})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TARIFF_TYPE", domainErr.Code)
		connectionRepo.AssertNotCalled(t, "ExistsByMeterNo", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-admin caller", func(t *testing.T) {
		connectionRepo := new(MockConnectionRepository)
		accountRepo := new(MockAccountRepository)
		service := NewConnectionService(connectionRepo, accountRepo, zap.NewNop())

		result, err := service.Create(ctx, userPrincipal(uuid.New()), CreateConnectionInput{
			AccountID:  uuid.New(),
			MeterNo:    "MTR-1004",
			TariffType: "residential",
			TariffRate: decimal.NewFromFloat(5.50),
		})

		assert.Nil(t, result)
		assert.Equal(t, shared.ErrUnauthorized, err)
		accountRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestConnectionService_ListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("joins connections with their owners", func(t *testing.T) {
		connectionRepo := new(MockConnectionRepository)
		accountRepo := new(MockAccountRepository)
		service := NewConnectionService(connectionRepo, accountRepo, zap.NewNop())

		ravi := newTestAccount(t, "Ravi Kumar", "ravi@example.com")
		priya := newTestAccount(t, "Priya Sharma", "priya@example.com")
		connA := newTestConnection(t, ravi.ID, "MTR-1001", 5.50)
		connB := newTestConnection(t, priya.ID, "MTR-1002", 7.25)

		connectionRepo.On("FindAll", ctx).Return([]billing.Connection{*connB, *connA}, nil)
		accountRepo.On("FindAll", ctx).Return([]identity.Account{*ravi, *priya}, nil)

		results, err := service.ListAll(ctx, adminPrincipal())

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "MTR-1002", results[0].MeterNo)
		assert.Equal(t, "Priya Sharma", results[0].Owner.Name)
		assert.Equal(t, "MTR-1001", results[1].MeterNo)
		assert.Equal(t, "ravi@example.com", results[1].Owner.Email)
	})

	t.Run("rejects non-admin caller", func(t *testing.T) {
		connectionRepo := new(MockConnectionRepository)
		accountRepo := new(MockAccountRepository)
		service := NewConnectionService(connectionRepo, accountRepo, zap.NewNop())

		results, err := service.ListAll(ctx, userPrincipal(uuid.New()))

		assert.Nil(t, results)
		assert.Equal(t, shared.ErrUnauthorized, err)
		connectionRepo.AssertNotCalled(t, "FindAll", mock.Anything)
	})
}

func TestConnectionService_ListOwned(t *testing.T) {
	ctx := context.Background()

	t.Run("returns only the caller's connections", func(t *testing.T) {
		connectionRepo := new(MockConnectionRepository)
		accountRepo := new(MockAccountRepository)
		service := NewConnectionService(connectionRepo, accountRepo, zap.NewNop())

		ravi := newTestAccount(t, "Ravi Kumar", "ravi@example.com")
		conn := newTestConnection(t, ravi.ID, "MTR-1001", 5.50)
		connectionRepo.On("FindByAccount", ctx, ravi.ID).Return([]billing.Connection{*conn}, nil)

		results, err := service.ListOwned(ctx, userPrincipal(ravi.ID))

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "MTR-1001", results[0].MeterNo)
	})

	t.Run("returns empty list for account without connections", func(t *testing.T) {
		connectionRepo := new(MockConnectionRepository)
		accountRepo := new(MockAccountRepository)
		service := NewConnectionService(connectionRepo, accountRepo, zap.NewNop())

		id := uuid.New()
		connectionRepo.On("FindByAccount", ctx, id).Return([]billing.Connection{}, nil)

		results, err := service.ListOwned(ctx, userPrincipal(id))

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
