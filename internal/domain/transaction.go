package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType kind of money movement recorded in the ledger
type TransactionType string

const (
	TransactionTimeholdAuth    TransactionType = "timehold_auth"
	TransactionTimeholdCapture TransactionType = "timehold_capture"
	TransactionTimeholdRelease TransactionType = "timehold_release"
	TransactionPayout          TransactionType = "payout"
	TransactionWalletCredit    TransactionType = "wallet_credit"
)

// Transaction ledger entry; a master's wallet balance is the sum of wallet credits and payouts
type Transaction struct {
	ID         int64
	BookingID  *int64
	MasterID   *int64
	ClientID   *int64
	Type       TransactionType
	Amount     decimal.Decimal
	ExternalID *string
	Desc       string
	CreatedAt  time.Time
}

// AffectsMasterWallet returns true for entries counted into the master balance
func (t *Transaction) AffectsMasterWallet() bool {
	return t.MasterID != nil && (t.Type == TransactionWalletCredit || t.Type == TransactionPayout)
}
