package reservation

import (
	"court-booking/internal/domain/schedule"

	"github.com/shopspring/decimal"
)

type PriceCalculator interface {
	Calculate(hourlyRate decimal.Decimal, slot schedule.Slot) decimal.Decimal
}

var minutesPerHour = decimal.NewFromInt(60)

type DefaultPriceCalculator struct{}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{}
}

// Calculate prorates the hourly rate by slot minutes, rounded half-up to cents.
func (pc *DefaultPriceCalculator) Calculate(hourlyRate decimal.Decimal, slot schedule.Slot) decimal.Decimal {
	minutes := decimal.NewFromInt(int64(slot.Duration()))
	return hourlyRate.Mul(minutes).DivRound(minutesPerHour, 2)
}
