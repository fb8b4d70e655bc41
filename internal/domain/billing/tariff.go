package billing

import (
	"github.com/ebilling/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TariffType categorizes a connection for pricing purposes
type TariffType string

const (
	TariffResidential  TariffType = "residential"
	TariffCommercial   TariffType = "commercial"
	TariffIndustrial   TariffType = "industrial"
	TariffAgricultural TariffType = "agricultural"
)

// IsValid reports whether the tariff type is one of the known categories
func (t TariffType) IsValid() bool {
	switch t {
	case TariffResidential, TariffCommercial, TariffIndustrial, TariffAgricultural:
		return true
	}
	return false
}

// CalculateBillAmount computes the amount due for a consumption of
// unitsConsumed at tariffRate, rounded to currency precision. The
// result is captured on the bill at creation time and never
// recalculated, so later tariff changes do not affect issued bills.
func CalculateBillAmount(tariffRate, unitsConsumed decimal.Decimal) (decimal.Decimal, error) {
	if tariffRate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_TARIFF_RATE", "Tariff rate must be a positive number")
	}
	if unitsConsumed.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("INVALID_UNITS", "Units consumed must be greater than 0")
	}
	return tariffRate.Mul(unitsConsumed).Round(2), nil
}
