package deposit

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

const (
	// NoHistoryRiskScore risk of a client without bookings
	NoHistoryRiskScore = 50

	noShowRiskWeight       = 0.7
	cancellationRiskWeight = 0.3
)

// masterNoShowShare part of a captured deposit that compensates the master
var masterNoShowShare = decimal.RequireFromString("0.625")

// DetermineReliability derives the category from booking history
func DetermineReliability(totalBookings, noShows int) domain.ClientReliability {
	switch {
	case noShows >= domain.NeedsProtectionNoShows:
		return domain.ReliabilityNeedsProtection
	case totalBookings < domain.NewClientMaxBookings:
		return domain.ReliabilityNew
	default:
		return domain.ReliabilityReliable
	}
}

// RiskScore no-show risk in 0..100
func RiskScore(totalBookings, noShows, cancellations int) int {
	if totalBookings <= 0 {
		return NoHistoryRiskScore
	}

	total := float64(totalBookings)
	score := 100 * (noShowRiskWeight*float64(noShows)/total + cancellationRiskWeight*float64(cancellations)/total)
	score = math.Round(score)

	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return int(score)
	}
}

// SplitNoShow splits a captured deposit into master compensation and client wallet credit
// Parts always sum to the rounded deposit
func SplitNoShow(deposit decimal.Decimal) (master, client decimal.Decimal) {
	total := money.Round(deposit)
	if !total.IsPositive() {
		return decimal.Zero, decimal.Zero
	}
	master = money.Round(total.Mul(masterNoShowShare))
	client = total.Sub(master)
	return master, client
}
