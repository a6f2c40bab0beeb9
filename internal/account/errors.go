package account

import "errors"

var (
	// ErrInvalidArgument covers empty identity fields, unset types and non-positive amounts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrMinimumBalance is returned when a savings withdrawal would leave the balance under its floor.
	ErrMinimumBalance = errors.New("minimum balance violation")
)
