package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	MasterID  int64     // ID мастера
	ServiceID int64     // ID услуги
	Date      time.Time // Дата (без времени)
	ClientID  *int64    // Для расчета депозита по категории клиента (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	MasterID        int64
	ServiceID       int64
	DurationMinutes int
	Reliability     domain.ClientReliability // категория, по которой рассчитан депозит
	Slots           []domain.AvailableSlot
}
