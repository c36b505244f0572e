package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// MinorUnitPlaces количество знаков после запятой для евро (центы)
const MinorUnitPlaces int32 = 2

// ErrNotFinite возвращается для NaN и ±Inf
var ErrNotFinite = errors.New("money: amount is not a finite number")

var hundred = decimal.NewFromInt(100)

// FromFloat converts a JSON number into a decimal amount
func FromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, ErrNotFinite
	}
	return decimal.NewFromFloat(f), nil
}

// Round rounds half-up to cents
// decimal.Round rounds half away from zero, which is half-up for non-negative amounts
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MinorUnitPlaces)
}

// MinorUnit returns the smallest representable amount (0.01)
func MinorUnit() decimal.Decimal {
	return decimal.New(1, -MinorUnitPlaces)
}

// ToCents converts an amount into integer cents for payment providers
func ToCents(d decimal.Decimal) int64 {
	return Round(d).Mul(hundred).IntPart()
}

// FromCents converts integer cents back into an amount
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -MinorUnitPlaces)
}

// Float returns the amount rounded to cents as float64 for JSON responses
func Float(d decimal.Decimal) float64 {
	f, _ := Round(d).Float64()
	return f
}
