package billing

import (
	"context"
	"time"

	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Consumption is an append-only record of units used on a connection.
// One is written alongside every bill; nothing ever updates or deletes
// a single record (the cascade delete removes them wholesale).
type Consumption struct {
	shared.BaseEntity
	ConnectionID uuid.UUID
	Units        decimal.Decimal
	ReadingDate  time.Time
}

// NewConsumption records units used on a connection as of now
func NewConsumption(connectionID uuid.UUID, units decimal.Decimal) (*Consumption, error) {
	if units.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_UNITS", "Units consumed must be greater than 0")
	}
	return &Consumption{
		BaseEntity:   shared.NewBaseEntity(),
		ConnectionID: connectionID,
		Units:        units,
		ReadingDate:  time.Now(),
	}, nil
}

// ConsumptionRepository defines read access to consumption records.
// Writes happen only through BillRepository.CreateWithConsumption.
type ConsumptionRepository interface {
	// FindByConnectionSince returns readings for a connection taken on or
	// after since, oldest first.
	FindByConnectionSince(ctx context.Context, connectionID uuid.UUID, since time.Time) ([]Consumption, error)
}
