package deposit

import "errors"

var (
	// ErrInvalidInput non-positive or non-finite price, non-positive duration
	ErrInvalidInput = errors.New("deposit: invalid input")
	// ErrUnknownCategory unrecognized reliability tag
	ErrUnknownCategory = errors.New("deposit: unknown reliability category")
	// ErrInvalidPolicy policy constants are inconsistent
	ErrInvalidPolicy = errors.New("deposit: invalid policy")
)
