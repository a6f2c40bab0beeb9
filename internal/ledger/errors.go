package ledger

import "errors"

var (
	// ErrNotFound is returned for an account number the bank does not hold.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicateAccount is returned when adding an account number that already exists.
	ErrDuplicateAccount = errors.New("account already exists")
)
