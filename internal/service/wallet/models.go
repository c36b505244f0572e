package wallet

import (
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// TransactionResponse запись журнала
type TransactionResponse struct {
	ID          int64     `json:"id"`
	BookingID   *int64    `json:"bookingId,omitempty"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	ExternalID  *string   `json:"externalId,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WalletResponse баланс мастера и последние транзакции
type WalletResponse struct {
	MasterID       int64                 `json:"masterId"`
	Balance        float64               `json:"balance"`
	MinPayout      float64               `json:"minPayout"`
	PayoutEligible bool                  `json:"payoutEligible"`
	Transactions   []TransactionResponse `json:"transactions"`
}

func fromDomainTransaction(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		BookingID:   t.BookingID,
		Type:        string(t.Type),
		Amount:      money.Float(t.Amount),
		ExternalID:  t.ExternalID,
		Description: t.Desc,
		CreatedAt:   t.CreatedAt,
	}
}
