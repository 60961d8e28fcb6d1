package errors

import (
	"errors"
	"fmt"

	"github.com/openagora/settlement/internal/domain/model"
)

// Resolution and state errors surfaced to callers. These are user-facing
// validation failures, not retryable transport problems.
var (
	// ErrSelfPayment is returned when buyer and seller are the same user.
	ErrSelfPayment = errors.New("buyer and seller are the same user")

	// ErrNoWallet means the seller has no wallet able to receive payment.
	ErrNoWallet = errors.New("seller has no payable wallet")

	// ErrSellerNotFound means the target entity or its owner does not exist.
	ErrSellerNotFound = errors.New("seller not found")

	// ErrAmountRequired is returned when a contribution omits the amount.
	ErrAmountRequired = errors.New("a positive amount is required for contributions")

	// ErrNotParticipant is returned when the caller is neither buyer nor seller.
	ErrNotParticipant = errors.New("caller is not a participant in this payment")

	// ErrAlreadyPaid rejects buyer confirmation of a settled intent.
	ErrAlreadyPaid = errors.New("payment is already settled")

	// ErrInvoiceGeneration is the generic class covering all remote-wallet
	// transport failures. Transport detail is logged, never surfaced.
	ErrInvoiceGeneration = errors.New("could not generate invoice")

	// ErrManualConfirmOnly is returned when buyer confirmation is attempted
	// for a method with authoritative server-side lookup.
	ErrManualConfirmOnly = errors.New("manual confirmation is only available for methods without settlement lookup")

	// ErrIntentNotFound means no payment intent exists for the given id.
	ErrIntentNotFound = errors.New("payment not found")

	// ErrEntityUnavailable means the target entity is inactive or out of stock.
	ErrEntityUnavailable = errors.New("entity is not available for payment")

	// ErrOrderNotFound means no order exists for the given id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderStateInvalid rejects a fulfillment action the order's current
	// status does not allow.
	ErrOrderStateInvalid = errors.New("order state does not allow this action")

	// ErrNotOwner is returned when the caller does not own the resource.
	ErrNotOwner = errors.New("resource does not belong to caller")
)

// TerminalStateError rejects any action against an intent that already
// reached a terminal state.
type TerminalStateError struct {
	Status model.IntentStatus
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("payment is in terminal state %q", e.Status)
}

func NewTerminalStateError(status model.IntentStatus) *TerminalStateError {
	return &TerminalStateError{Status: status}
}
