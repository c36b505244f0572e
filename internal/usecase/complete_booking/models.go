package complete_booking

import "github.com/m04kA/SMC-SlottaService/internal/domain"

// Request модель запроса на завершение визита
type Request struct {
	BookingID int64
	MasterID  int64 // мастер из сессии
}

// Response завершенное бронирование и новая категория клиента
type Response struct {
	Booking      *domain.Booking
	Reliability  domain.ClientReliability
	HoldReleased bool // удержание снято у платежного провайдера
}
