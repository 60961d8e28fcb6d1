package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedAddress is returned for lightning addresses that do not
	// parse as local@domain.
	ErrMalformedAddress = errors.New("malformed lightning address")
)

// AmountBoundsError is returned when the requested amount falls outside the
// bounds declared by the receiving endpoint. It stays distinct from generic
// transport errors because the buyer can act on it.
type AmountBoundsError struct {
	RequestedMsat int64
	MinMsat       int64
	MaxMsat       int64
}

func (e *AmountBoundsError) Error() string {
	return fmt.Sprintf("amount %d msat outside receivable bounds [%d, %d]",
		e.RequestedMsat, e.MinMsat, e.MaxMsat)
}

func NewAmountBoundsError(requested, min, max int64) *AmountBoundsError {
	return &AmountBoundsError{RequestedMsat: requested, MinMsat: min, MaxMsat: max}
}
