package deposit

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// Tier duration class of a service
type Tier string

const (
	TierShort  Tier = "short"
	TierMedium Tier = "medium"
	TierLong   Tier = "long"
)

// Adjustments optional contextual signals
type Adjustments struct {
	IsPeakSlot             bool
	HasCancellationHistory bool
}

// Quote deposit amount with the breakdown of how it was obtained
type Quote struct {
	Amount       decimal.Decimal
	RawAmount    decimal.Decimal
	Tier         Tier
	BasePercent  decimal.Decimal
	FinalPercent decimal.Decimal
	Reliability  domain.ClientReliability

	PeakApplied         bool
	CancellationApplied bool
	FloorApplied        bool
	CeilingApplied      bool
}

// Calculator computes no-show protection deposits
// It holds no mutable state and is safe for concurrent use
type Calculator struct {
	policy Policy
}

// NewCalculator validates the policy and builds a calculator
func NewCalculator(policy Policy) (*Calculator, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{policy: policy}, nil
}

// MustNewCalculator is NewCalculator that panics on an invalid policy
func MustNewCalculator(policy Policy) *Calculator {
	c, err := NewCalculator(policy)
	if err != nil {
		panic(err)
	}
	return c
}

// Policy returns a copy of the policy in use
func (c *Calculator) Policy() Policy {
	return c.policy
}

// Compute returns the deposit amount for a booking
func (c *Calculator) Compute(price decimal.Decimal, durationMinutes int, reliability domain.ClientReliability, adj Adjustments) (decimal.Decimal, error) {
	q, err := c.Quote(price, durationMinutes, reliability, adj)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Amount, nil
}

// Quote computes the deposit together with its breakdown
func (c *Calculator) Quote(price decimal.Decimal, durationMinutes int, reliability domain.ClientReliability, adj Adjustments) (Quote, error) {
	if err := validateInput(price, durationMinutes); err != nil {
		return Quote{}, err
	}

	if reliability == "" {
		reliability = domain.ReliabilityNew
	}
	relMul, err := c.reliabilityMultiplier(reliability)
	if err != nil {
		return Quote{}, err
	}

	tier, basePercent := c.TierFor(durationMinutes)
	q := Quote{
		Tier:        tier,
		BasePercent: basePercent,
		Reliability: reliability,
	}

	factor := relMul
	if adj.HasCancellationHistory {
		factor = c.withCancellation(relMul, reliability)
		q.CancellationApplied = !factor.Equal(relMul)
	}

	percent := basePercent.Mul(factor)
	if adj.IsPeakSlot {
		percent = percent.Mul(c.policy.PeakSlotMultiplier)
		q.PeakApplied = true
	}
	q.FinalPercent = percent

	raw := price.Mul(percent)
	q.RawAmount = raw

	amount := raw
	if tier == TierLong && amount.LessThan(c.policy.LongServiceFloor) {
		amount = c.policy.LongServiceFloor
		q.FloorApplied = true
	}

	// Потолок применяется последним и всегда побеждает минимум
	ceiling := price.Mul(c.policy.CeilingPercent)
	if amount.GreaterThan(ceiling) {
		amount = ceiling
		q.CeilingApplied = true
		q.FloorApplied = false
	}

	q.Amount = c.finalize(amount, price)
	return q, nil
}

// Base returns the offering-level deposit: tier percentage only, same clamp and rounding
func (c *Calculator) Base(price decimal.Decimal, durationMinutes int) (decimal.Decimal, error) {
	if err := validateInput(price, durationMinutes); err != nil {
		return decimal.Zero, err
	}

	tier, percent := c.TierFor(durationMinutes)
	amount := price.Mul(percent)
	if tier == TierLong && amount.LessThan(c.policy.LongServiceFloor) {
		amount = c.policy.LongServiceFloor
	}
	if ceiling := price.Mul(c.policy.CeilingPercent); amount.GreaterThan(ceiling) {
		amount = ceiling
	}

	return c.finalize(amount, price), nil
}

// TierFor returns the duration tier and its base percentage
func (c *Calculator) TierFor(durationMinutes int) (Tier, decimal.Decimal) {
	switch {
	case durationMinutes < c.policy.MediumFromMinutes:
		return TierShort, c.policy.ShortPercent
	case durationMinutes <= c.policy.LongAfterMinutes:
		return TierMedium, c.policy.MediumPercent
	default:
		return TierLong, c.policy.LongPercent
	}
}

// PriceFromFloat converts a JSON price to decimal, non-finite values are invalid input
func PriceFromFloat(f float64) (decimal.Decimal, error) {
	d, err := money.FromFloat(f)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return d, nil
}

func (c *Calculator) reliabilityMultiplier(r domain.ClientReliability) (decimal.Decimal, error) {
	switch r {
	case domain.ReliabilityReliable:
		return c.policy.ReliableMultiplier, nil
	case domain.ReliabilityNew:
		return c.policy.NewMultiplier, nil
	case domain.ReliabilityNeedsProtection:
		return c.policy.NeedsProtectionMultiplier, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCategory, string(r))
	}
}

// withCancellation applies the cancellation-history multiplier to the reliability factor.
// A needs-protection client already pays for that risk unless the policy stacks both,
// but never pays less than a new client with the same history.
func (c *Calculator) withCancellation(relMul decimal.Decimal, reliability domain.ClientReliability) decimal.Decimal {
	if reliability == domain.ReliabilityNeedsProtection && !c.policy.StackCancellationWithNeedsProtection {
		return decimal.Max(relMul, c.policy.NewMultiplier.Mul(c.policy.CancellationMultiplier))
	}
	return relMul.Mul(c.policy.CancellationMultiplier)
}

// finalize rounds to cents and keeps the result inside (0, price]
func (c *Calculator) finalize(amount, price decimal.Decimal) decimal.Decimal {
	rounded := money.Round(amount)
	if rounded.IsPositive() {
		return rounded
	}
	return decimal.Min(money.MinorUnit(), price)
}

func validateInput(price decimal.Decimal, durationMinutes int) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", ErrInvalidInput, price)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, durationMinutes)
	}
	return nil
}
