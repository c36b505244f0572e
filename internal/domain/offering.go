package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOffering a service a master sells
// BaseDeposit is the deposit before any client adjustment; bookings snapshot their own amount
type ServiceOffering struct {
	ID              int64
	MasterID        int64
	Name            string
	Description     *string
	DurationMinutes int
	Price           decimal.Decimal
	BaseDeposit     decimal.Decimal
	Active          bool
	NewClientsOnly  bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookableBy returns false for new-clients-only offerings when the client is returning
func (s *ServiceOffering) IsBookableBy(client *Client) bool {
	if !s.Active {
		return false
	}
	if s.NewClientsOnly && client != nil && client.IsReturning() {
		return false
	}
	return true
}
