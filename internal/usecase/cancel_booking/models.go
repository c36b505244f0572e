package cancel_booking

import "github.com/m04kA/SMC-SlottaService/internal/domain"

// Request модель запроса на отмену
// Отменить может мастер (MasterID из сессии) или клиент записи (ClientID)
type Request struct {
	BookingID int64
	MasterID  *int64
	ClientID  *int64
	Reason    *string
}

// Response отмененное бронирование
type Response struct {
	Booking      *domain.Booking
	HoldReleased bool
}
