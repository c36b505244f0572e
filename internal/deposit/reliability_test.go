package deposit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

func TestDetermineReliability(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		noShows int
		want    domain.ClientReliability
	}{
		{"No history", 0, 0, domain.ReliabilityNew},
		{"Two bookings", 2, 0, domain.ReliabilityNew},
		{"Three bookings", 3, 0, domain.ReliabilityReliable},
		{"One no-show", 10, 1, domain.ReliabilityReliable},
		{"Two no-shows", 10, 2, domain.ReliabilityNeedsProtection},
		{"Two no-shows out of two", 2, 2, domain.ReliabilityNeedsProtection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineReliability(tt.total, tt.noShows))
		})
	}
}

func TestRiskScore(t *testing.T) {
	assert.Equal(t, NoHistoryRiskScore, RiskScore(0, 0, 0))
	assert.Equal(t, 0, RiskScore(10, 0, 0))
	assert.Equal(t, 10, RiskScore(10, 1, 1))
	assert.Equal(t, 35, RiskScore(4, 2, 0))
	assert.Equal(t, 100, RiskScore(2, 2, 2))
	assert.Equal(t, 100, RiskScore(1, 3, 3))
}

func TestSplitNoShow(t *testing.T) {
	tests := []struct {
		deposit    string
		wantMaster string
		wantClient string
	}{
		{"40", "25.00", "15.00"},
		{"10", "6.25", "3.75"},
		{"8.81", "5.51", "3.30"},
		{"0.01", "0.01", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.deposit, func(t *testing.T) {
			master, client := SplitNoShow(dec(tt.deposit))

			assert.Equal(t, tt.wantMaster, master.StringFixed(2))
			assert.Equal(t, tt.wantClient, client.StringFixed(2))
			assert.True(t, master.Add(client).Equal(dec(tt.deposit)))
		})
	}
}
