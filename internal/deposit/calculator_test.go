package deposit

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func stackingPolicy() Policy {
	p := DefaultPolicy()
	p.StackCancellationWithNeedsProtection = true
	return p
}

func TestCalculator_Compute(t *testing.T) {
	calc := MustNewCalculator(DefaultPolicy())

	tests := []struct {
		name        string
		price       string
		duration    int
		reliability domain.ClientReliability
		adj         Adjustments
		want        string
	}{
		{
			name:        "Medium service, new client",
			price:       "150",
			duration:    180,
			reliability: domain.ReliabilityNew,
			want:        "58.50",
		},
		{
			name:        "Short service, reliable client",
			price:       "40",
			duration:    45,
			reliability: domain.ReliabilityReliable,
			want:        "8.80",
		},
		{
			name:        "Last minute of short tier",
			price:       "150",
			duration:    59,
			reliability: domain.ReliabilityNew,
			want:        "49.50",
		},
		{
			name:        "First minute of medium tier",
			price:       "150",
			duration:    60,
			reliability: domain.ReliabilityNew,
			want:        "58.50",
		},
		{
			name:        "Long tier starts after 180 minutes",
			price:       "150",
			duration:    181,
			reliability: domain.ReliabilityNew,
			want:        "72.00",
		},
		{
			name:        "Empty reliability is treated as new",
			price:       "150",
			duration:    180,
			reliability: "",
			want:        "58.50",
		},
		{
			name:        "Peak slot",
			price:       "100",
			duration:    90,
			reliability: domain.ReliabilityReliable,
			adj:         Adjustments{IsPeakSlot: true},
			want:        "29.90",
		},
		{
			name:        "Cancellation history for reliable client",
			price:       "100",
			duration:    90,
			reliability: domain.ReliabilityReliable,
			adj:         Adjustments{HasCancellationHistory: true},
			want:        "33.80",
		},
		{
			name:        "Cancellation history compounds with new client multiplier",
			price:       "100",
			duration:    90,
			reliability: domain.ReliabilityNew,
			adj:         Adjustments{HasCancellationHistory: true},
			want:        "50.70",
		},
		{
			name:        "Cancellation history and peak compound for new client",
			price:       "100",
			duration:    90,
			reliability: domain.ReliabilityNew,
			adj:         Adjustments{HasCancellationHistory: true, IsPeakSlot: true},
			want:        "58.31",
		},
		{
			name:        "Cancellation history lifts needs-protection only to new-client level",
			price:       "100",
			duration:    90,
			reliability: domain.ReliabilityNeedsProtection,
			adj:         Adjustments{HasCancellationHistory: true},
			want:        "50.70",
		},
		{
			name:        "Long service raised to floor",
			price:       "20",
			duration:    200,
			reliability: domain.ReliabilityReliable,
			want:        "10.00",
		},
		{
			name:        "Ceiling wins over floor",
			price:       "12",
			duration:    200,
			reliability: domain.ReliabilityReliable,
			want:        "8.40",
		},
		{
			name:        "No floor for short services",
			price:       "10",
			duration:    30,
			reliability: domain.ReliabilityReliable,
			want:        "2.20",
		},
		{
			name:        "Result rounding to zero is raised to one cent",
			price:       "0.01",
			duration:    30,
			reliability: domain.ReliabilityReliable,
			want:        "0.01",
		},
		{
			name:        "Half-up rounding",
			price:       "12.25",
			duration:    30,
			reliability: domain.ReliabilityReliable,
			want:        "2.70",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Compute(dec(tt.price), tt.duration, tt.reliability, tt.adj)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestCalculator_Compute_Stacking(t *testing.T) {
	calc := MustNewCalculator(stackingPolicy())

	got, err := calc.Compute(dec("100"), 90, domain.ReliabilityNew, Adjustments{HasCancellationHistory: true})
	require.NoError(t, err)
	assert.Equal(t, "50.70", got.StringFixed(2))

	got, err = calc.Compute(dec("100"), 90, domain.ReliabilityNeedsProtection, Adjustments{HasCancellationHistory: true})
	require.NoError(t, err)
	assert.Equal(t, "54.93", got.StringFixed(2))
}

func TestCalculator_Compute_Errors(t *testing.T) {
	calc := MustNewCalculator(DefaultPolicy())

	tests := []struct {
		name        string
		price       decimal.Decimal
		duration    int
		reliability domain.ClientReliability
		wantErr     error
	}{
		{"Zero price", decimal.Zero, 60, domain.ReliabilityNew, ErrInvalidInput},
		{"Negative price", dec("-5"), 60, domain.ReliabilityNew, ErrInvalidInput},
		{"Zero duration", dec("50"), 0, domain.ReliabilityNew, ErrInvalidInput},
		{"Negative duration", dec("50"), -30, domain.ReliabilityNew, ErrInvalidInput},
		{"Unknown category", dec("50"), 60, domain.ClientReliability("vip"), ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Compute(tt.price, tt.duration, tt.reliability, Adjustments{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPriceFromFloat(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := PriceFromFloat(f)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	d, err := PriceFromFloat(49.99)
	require.NoError(t, err)
	assert.Equal(t, "49.99", d.StringFixed(2))
}

func TestCalculator_Quote_Ceiling(t *testing.T) {
	calc := MustNewCalculator(stackingPolicy())
	adj := Adjustments{IsPeakSlot: true, HasCancellationHistory: true}

	for _, price := range []string{"150", "99.90", "40"} {
		t.Run(price, func(t *testing.T) {
			q, err := calc.Quote(dec(price), 240, domain.ReliabilityNeedsProtection, adj)

			require.NoError(t, err)
			assert.True(t, q.FinalPercent.GreaterThan(dec("0.70")))
			assert.True(t, q.CeilingApplied)
			assert.False(t, q.FloorApplied)
			assert.True(t, q.Amount.Equal(dec(price).Mul(dec("0.70"))), "got %s", q.Amount)
		})
	}
}

func TestCalculator_Quote_Breakdown(t *testing.T) {
	calc := MustNewCalculator(DefaultPolicy())

	q, err := calc.Quote(dec("20"), 200, domain.ReliabilityReliable, Adjustments{IsPeakSlot: true})
	require.NoError(t, err)

	assert.Equal(t, TierLong, q.Tier)
	assert.Equal(t, "0.4", q.BasePercent.String())
	assert.Equal(t, "0.368", q.FinalPercent.String())
	assert.Equal(t, "7.36", q.RawAmount.StringFixed(2))
	assert.Equal(t, "10.00", q.Amount.StringFixed(2))
	assert.True(t, q.FloorApplied)
	assert.False(t, q.CeilingApplied)
	assert.True(t, q.PeakApplied)
	assert.False(t, q.CancellationApplied)
	assert.Equal(t, domain.ReliabilityReliable, q.Reliability)
}

func TestCalculator_Bounds(t *testing.T) {
	prices := []string{"0.01", "0.5", "1", "9.99", "12", "25", "40", "150", "999.99", "5000"}
	durations := []int{1, 30, 59, 60, 120, 180, 181, 240, 600}
	reliabilities := []domain.ClientReliability{
		domain.ReliabilityReliable,
		domain.ReliabilityNew,
		domain.ReliabilityNeedsProtection,
	}
	adjustments := []Adjustments{
		{},
		{IsPeakSlot: true},
		{HasCancellationHistory: true},
		{IsPeakSlot: true, HasCancellationHistory: true},
	}

	for _, policy := range []Policy{DefaultPolicy(), stackingPolicy()} {
		calc := MustNewCalculator(policy)

		for _, p := range prices {
			price := dec(p)
			for _, d := range durations {
				for _, adj := range adjustments {
					prev := decimal.Zero
					for _, r := range reliabilities {
						got, err := calc.Compute(price, d, r, adj)
						require.NoError(t, err)

						assert.True(t, got.IsPositive(), "price=%s duration=%d reliability=%s", p, d, r)
						assert.True(t, got.LessThanOrEqual(price), "price=%s duration=%d reliability=%s got=%s", p, d, r, got)
						assert.True(t, got.GreaterThanOrEqual(prev), "not monotonic: price=%s duration=%d reliability=%s adj=%+v", p, d, r, adj)

						again, err := calc.Compute(price, d, r, adj)
						require.NoError(t, err)
						assert.True(t, got.Equal(again))

						prev = got
					}
				}
			}
		}
	}
}

func TestCalculator_Base(t *testing.T) {
	calc := MustNewCalculator(DefaultPolicy())

	tests := []struct {
		price    string
		duration int
		want     string
	}{
		{"150", 180, "48.75"},
		{"40", 45, "11.00"},
		{"20", 200, "10.00"},
		{"12", 200, "8.40"},
	}

	for _, tt := range tests {
		got, err := calc.Base(dec(tt.price), tt.duration)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.StringFixed(2))
	}

	_, err := calc.Base(decimal.Zero, 60)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewCalculator_InvalidPolicy(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Policy)
	}{
		{"Zero percent", func(p *Policy) { p.ShortPercent = decimal.Zero }},
		{"Ceiling above price", func(p *Policy) { p.CeilingPercent = dec("1.5") }},
		{"Negative floor", func(p *Policy) { p.LongServiceFloor = dec("-1") }},
		{"Tier bounds reversed", func(p *Policy) { p.LongAfterMinutes = 30 }},
		{"Multipliers out of risk order", func(p *Policy) { p.ReliableMultiplier = dec("1.25") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.modify(&p)

			_, err := NewCalculator(p)
			assert.ErrorIs(t, err, ErrInvalidPolicy)
		})
	}
}
