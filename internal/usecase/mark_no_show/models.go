package mark_no_show

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// Request модель запроса на отметку неявки
type Request struct {
	BookingID int64
	MasterID  int64 // мастер из сессии
}

// Response результат разделения депозита
type Response struct {
	Booking      *domain.Booking
	MasterShare  decimal.Decimal // компенсация мастеру
	ClientShare  decimal.Decimal // зачислено на кошелек клиента
	Reliability  domain.ClientReliability
	HoldCaptured bool
}
