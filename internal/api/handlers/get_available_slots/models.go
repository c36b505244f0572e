package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SlottaService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	MasterID        int64           `json:"masterId"`
	ServiceID       int64           `json:"serviceId"`
	DurationMinutes int             `json:"durationMinutes"`
	Reliability     string          `json:"reliability"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	IsPeak          bool    `json:"isPeak"`
	DepositPreview  float64 `json:"depositPreview"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			IsPeak:          slot.IsPeak,
			DepositPreview:  money.Float(slot.DepositPreview),
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		MasterID:        resp.MasterID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Reliability:     string(resp.Reliability),
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(masterID, serviceID int64, dateStr, clientIDStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		MasterID:  masterID,
		ServiceID: serviceID,
		Date:      date,
	}

	if clientIDStr != "" {
		clientID, err := strconv.ParseInt(clientIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ClientID = &clientID
	}

	return req, nil
}
