package run_payouts

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("run_payouts: internal error")

	// errBelowMinimum баланс мастера меньше минимальной выплаты
	errBelowMinimum = errors.New("run_payouts: balance below minimum payout")
)
