package billing

import (
	"context"
	"strings"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Connection represents a metered electricity hookup owned by one account.
type Connection struct {
	shared.BaseEntity
	AccountID  uuid.UUID
	MeterNo    string
	TariffType TariffType
	TariffRate decimal.Decimal
}

// NewConnection creates a new connection for an account
func NewConnection(accountID uuid.UUID, meterNo string, tariffType TariffType, tariffRate decimal.Decimal) (*Connection, error) {
	meterNo = strings.TrimSpace(meterNo)
	if meterNo == "" {
		return nil, shared.NewDomainError("INVALID_METER_NO", "Meter number cannot be empty")
	}
	if len(meterNo) > 50 {
		return nil, shared.NewDomainError("INVALID_METER_NO", "Meter number cannot exceed 50 characters")
	}
	if !tariffType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TARIFF_TYPE", "Unknown tariff type")
	}
	if tariffRate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_TARIFF_RATE", "Tariff rate must be a positive number")
	}

	return &Connection{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  accountID,
		MeterNo:    meterNo,
		TariffType: tariffType,
		TariffRate: tariffRate,
	}, nil
}

// BillAmount computes the amount a bill over unitsConsumed would carry
// at the connection's current tariff rate.
func (c *Connection) BillAmount(unitsConsumed decimal.Decimal) (decimal.Decimal, error) {
	return CalculateBillAmount(c.TariffRate, unitsConsumed)
}

// ConnectionRepository defines persistence operations for connections
type ConnectionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Connection, error)
	// FindAll returns every connection, newest first.
	FindAll(ctx context.Context) ([]Connection, error)
	// FindByAccount returns the connections owned by one account, newest first.
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]Connection, error)
	ExistsByMeterNo(ctx context.Context, meterNo string) (bool, error)
	Save(ctx context.Context, connection *Connection) error
}
