package payments

import "errors"

var (
	// ErrInvalidAmount сумма не положительна
	ErrInvalidAmount = errors.New("payments: invalid amount")

	// ErrProvider ошибка платежного провайдера
	ErrProvider = errors.New("payments: provider error")

	// ErrNoPayoutAccount у мастера нет аккаунта для выплат
	ErrNoPayoutAccount = errors.New("payments: no payout account")
)
