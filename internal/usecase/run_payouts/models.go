package run_payouts

import "github.com/shopspring/decimal"

// Payout выплата одному мастеру
type Payout struct {
	MasterID   int64
	Amount     decimal.Decimal
	TransferID string
}

// Response итог прогона выплат
type Response struct {
	Paid    []Payout
	Skipped int // баланс ниже минимума или нет аккаунта для выплат
	Failed  int
	Total   decimal.Decimal
}
