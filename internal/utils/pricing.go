package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	day = 24 * time.Hour

	// LatePenaltyMultiplier is applied to every day past the agreed end date.
	LatePenaltyMultiplier = 2
)

// RentalCostBreakdown provides detailed cost breakdown
type RentalCostBreakdown struct {
	ReservedDays int
	ExceededDays int
	PricePerDay  decimal.Decimal
	ReservedCost decimal.Decimal
	PenaltyCost  decimal.Decimal
	TotalCost    decimal.Decimal
}

// WholeDays counts the complete 24h periods between from and to, truncated toward zero.
func WholeDays(from, to time.Time) int {
	return int(to.Sub(from) / day)
}

// ExceededDays counts the whole days a vehicle was kept past its agreed end.
// Early returns count as zero.
func ExceededDays(agreedEnd, returnedAt time.Time) int {
	return max(0, WholeDays(agreedEnd, returnedAt))
}

// CalculateRentalCost charges the reserved days at the daily price and every
// exceeded day at LatePenaltyMultiplier times the daily price.
func CalculateRentalCost(start, agreedEnd, returnedAt time.Time, pricePerDay decimal.Decimal) RentalCostBreakdown {
	reserved := WholeDays(start, agreedEnd)
	exceeded := ExceededDays(agreedEnd, returnedAt)

	reservedCost := pricePerDay.Mul(decimal.NewFromInt(int64(reserved)))
	penaltyCost := pricePerDay.Mul(decimal.NewFromInt(int64(LatePenaltyMultiplier * exceeded)))

	return RentalCostBreakdown{
		ReservedDays: reserved,
		ExceededDays: exceeded,
		PricePerDay:  pricePerDay,
		ReservedCost: reservedCost,
		PenaltyCost:  penaltyCost,
		TotalCost:    reservedCost.Add(penaltyCost),
	}
}
