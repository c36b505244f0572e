package deposit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy constants of the deposit calculation
// Percentages are fractions: 0.275 means 27.5 %
type Policy struct {
	// Tier bounds: duration < MediumFromMinutes is short, duration > LongAfterMinutes is long
	MediumFromMinutes int
	LongAfterMinutes  int

	ShortPercent  decimal.Decimal
	MediumPercent decimal.Decimal
	LongPercent   decimal.Decimal

	ReliableMultiplier        decimal.Decimal
	NewMultiplier             decimal.Decimal
	NeedsProtectionMultiplier decimal.Decimal

	PeakSlotMultiplier     decimal.Decimal
	CancellationMultiplier decimal.Decimal

	// When false, cancellation history lifts a needs-protection client only up to the
	// new-client level (NewMultiplier x CancellationMultiplier). Other categories always
	// get CancellationMultiplier
	StackCancellationWithNeedsProtection bool

	CeilingPercent   decimal.Decimal
	LongServiceFloor decimal.Decimal
}

// DefaultPolicy returns the standard Slotta policy
func DefaultPolicy() Policy {
	return Policy{
		MediumFromMinutes: 60,
		LongAfterMinutes:  180,

		ShortPercent:  decimal.RequireFromString("0.275"),
		MediumPercent: decimal.RequireFromString("0.325"),
		LongPercent:   decimal.RequireFromString("0.40"),

		ReliableMultiplier:        decimal.RequireFromString("0.8"),
		NewMultiplier:             decimal.RequireFromString("1.2"),
		NeedsProtectionMultiplier: decimal.RequireFromString("1.3"),

		PeakSlotMultiplier:     decimal.RequireFromString("1.15"),
		CancellationMultiplier: decimal.RequireFromString("1.3"),

		CeilingPercent:   decimal.RequireFromString("0.70"),
		LongServiceFloor: decimal.NewFromInt(10),
	}
}

// Validate checks that the policy can produce deposits within (0, price]
func (p Policy) Validate() error {
	if p.MediumFromMinutes <= 0 || p.LongAfterMinutes < p.MediumFromMinutes {
		return fmt.Errorf("%w: tier bounds %d/%d", ErrInvalidPolicy, p.MediumFromMinutes, p.LongAfterMinutes)
	}

	positive := map[string]decimal.Decimal{
		"short percent":               p.ShortPercent,
		"medium percent":              p.MediumPercent,
		"long percent":                p.LongPercent,
		"reliable multiplier":         p.ReliableMultiplier,
		"new multiplier":              p.NewMultiplier,
		"needs-protection multiplier": p.NeedsProtectionMultiplier,
		"peak slot multiplier":        p.PeakSlotMultiplier,
		"cancellation multiplier":     p.CancellationMultiplier,
		"ceiling percent":             p.CeilingPercent,
	}
	for name, v := range positive {
		if !v.IsPositive() {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidPolicy, name, v)
		}
	}

	if p.CeilingPercent.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: ceiling percent must not exceed 1, got %s", ErrInvalidPolicy, p.CeilingPercent)
	}
	if p.LongServiceFloor.IsNegative() {
		return fmt.Errorf("%w: long service floor must not be negative", ErrInvalidPolicy)
	}

	// Порядок риска reliable < new < needs-protection
	if p.ReliableMultiplier.GreaterThan(p.NewMultiplier) || p.NewMultiplier.GreaterThan(p.NeedsProtectionMultiplier) {
		return fmt.Errorf("%w: reliability multipliers must be non-decreasing by risk", ErrInvalidPolicy)
	}

	return nil
}
