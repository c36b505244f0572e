package quote_deposit

import (
	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// Request запрос расчета депозита
// Либо ServiceID, либо пара Price + DurationMinutes
type Request struct {
	ServiceID       *int64
	Price           *float64
	DurationMinutes *int

	// Если указан клиент, берется его сохраненная категория и история отмен
	ClientID    *int64
	Reliability *string

	IsPeakSlot             bool
	HasCancellationHistory *bool
}

// Response разбивка расчета
type Response struct {
	Amount              float64 `json:"amount"`
	RawAmount           float64 `json:"rawAmount"`
	Tier                string  `json:"tier"`
	BasePercent         float64 `json:"basePercent"`  // 27.5
	FinalPercent        float64 `json:"finalPercent"` // после всех множителей
	Reliability         string  `json:"reliability"`
	PeakApplied         bool    `json:"peakApplied"`
	CancellationApplied bool    `json:"cancellationApplied"`
	FloorApplied        bool    `json:"floorApplied"`
	CeilingApplied      bool    `json:"ceilingApplied"`
}

func fromQuote(q deposit.Quote) *Response {
	base, _ := q.BasePercent.Shift(2).Round(3).Float64()
	final, _ := q.FinalPercent.Shift(2).Round(3).Float64()
	return &Response{
		Amount:              money.Float(q.Amount),
		RawAmount:           money.Float(q.RawAmount),
		Tier:                string(q.Tier),
		BasePercent:         base,
		FinalPercent:        final,
		Reliability:         string(q.Reliability),
		PeakApplied:         q.PeakApplied,
		CancellationApplied: q.CancellationApplied,
		FloorApplied:        q.FloorApplied,
		CeilingApplied:      q.CeilingApplied,
	}
}
