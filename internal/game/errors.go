package game

import "errors"

// Validation outcomes surfaced to the caller as structured errors. None of
// these is fatal; they abort only the requested action, never the passive
// income already reconciled in the same call.
var (
	ErrUnknownContract    = errors.New("no such contract")
	ErrUnknownItem        = errors.New("no such item")
	ErrInsufficientEnergy = errors.New("not enough energy")
	ErrInsufficientFunds  = errors.New("not enough money")
	ErrAlreadyOwned       = errors.New("item already owned")
)

// IsValidationError reports whether err is a domain-rule failure rather than
// an infrastructure fault.
func IsValidationError(err error) bool {
	for _, e := range []error{
		ErrUnknownContract,
		ErrUnknownItem,
		ErrInsufficientEnergy,
		ErrInsufficientFunds,
		ErrAlreadyOwned,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
