package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientReliability category attached to a client, drives the deposit multiplier
type ClientReliability string

const (
	ReliabilityReliable        ClientReliability = "reliable"
	ReliabilityNew             ClientReliability = "new"
	ReliabilityNeedsProtection ClientReliability = "needs-protection"
)

// IsKnown returns true for the three supported categories
func (r ClientReliability) IsKnown() bool {
	switch r {
	case ReliabilityReliable, ReliabilityNew, ReliabilityNeedsProtection:
		return true
	default:
		return false
	}
}

// Client represents a person booking services
type Client struct {
	ID    int64
	Email string
	Name  string
	Phone *string

	TotalBookings     int
	CompletedBookings int
	NoShows           int
	Cancellations     int
	Reliability       ClientReliability

	WalletBalance  decimal.Decimal
	StripeCustomer *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCancellationHistory returns true if the client cancelled at least once
func (c *Client) HasCancellationHistory() bool {
	return c.Cancellations > 0
}

// IsReturning returns true if the client completed at least one booking
func (c *Client) IsReturning() bool {
	return c.CompletedBookings > 0
}
