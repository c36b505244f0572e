package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	MasterID        int64            // ID мастера
	ServiceID       int64            // ID услуги
	ClientID        int64            // ID клиента
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	Notes           *string          // Дополнительные заметки (опционально)
	PaymentMethodID *string          // Способ оплаты для немедленного подтверждения удержания (опционально)
}

// Response созданное бронирование и данные для подтверждения оплаты на клиенте
type Response struct {
	Booking      *domain.Booking
	Quote        deposit.Quote
	ClientSecret *string // nil, если удержание не создано
}
