package quote_deposit

import (
	quoteDeposit "github.com/m04kA/SMC-SlottaService/internal/usecase/quote_deposit"
)

// QuoteRequest HTTP request model
// Либо serviceId, либо price + durationMinutes
type QuoteRequest struct {
	ServiceID              *int64   `json:"serviceId,omitempty"`
	Price                  *float64 `json:"price,omitempty"`
	DurationMinutes        *int     `json:"durationMinutes,omitempty"`
	ClientID               *int64   `json:"clientId,omitempty"`
	Reliability            *string  `json:"reliability,omitempty"`
	IsPeakSlot             bool     `json:"isPeakSlot"`
	HasCancellationHistory *bool    `json:"hasCancellationHistory,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *QuoteRequest) ToUseCaseRequest() *quoteDeposit.Request {
	return &quoteDeposit.Request{
		ServiceID:              r.ServiceID,
		Price:                  r.Price,
		DurationMinutes:        r.DurationMinutes,
		ClientID:               r.ClientID,
		Reliability:            r.Reliability,
		IsPeakSlot:             r.IsPeakSlot,
		HasCancellationHistory: r.HasCancellationHistory,
	}
}
