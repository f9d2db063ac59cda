package domain

import "errors"

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrOutOfRange          = errors.New("amount out of range")
	ErrInvalidSettings     = errors.New("invalid credit account settings")
	ErrInvalidEntryType    = errors.New("invalid ledger entry type")
	ErrNotFound            = errors.New("not found")
	ErrConcurrencyConflict = errors.New("concurrent update conflict, retry the operation")
)

// IsValidation reports whether err was raised before any write took place.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrInvalidSettings) ||
		errors.Is(err, ErrInvalidEntryType)
}
