package provider

import (
	"context"
	"time"

	"github.com/openagora/settlement/internal/domain/model"
)

// ResolvedWallet is the transient output of wallet resolution: the chosen
// method plus exactly the material that method needs. It is never persisted
// and the decrypted secret lives only for the duration of one provider call.
type ResolvedWallet struct {
	Method model.PaymentMethod

	// NWCSecret is the decrypted connection URI for the NWC method.
	NWCSecret string
	// LightningAddress is the local@domain identifier for LNURL-pay.
	LightningAddress string
	// OnchainAddress is the raw base-layer address for on-chain payment.
	OnchainAddress string
}

// Invoice is the common result shape of all invoice generators.
type Invoice struct {
	// PaymentRequest is the payable artifact: a bolt11 string for lightning
	// methods, a bitcoin: URI for on-chain.
	PaymentRequest string
	// SettlementID is the protocol identifier used for settlement lookup.
	// Empty for methods without authoritative lookup.
	SettlementID string
	// OnchainAddress is set only for the on-chain method.
	OnchainAddress string
	// QRContent is the display form of the artifact, derived deterministically
	// from PaymentRequest. It must be passed through unchanged.
	QRContent string
	// ExpiresAt is nil when the method has no hard expiry.
	ExpiresAt *time.Time
}

// InvoiceGenerator turns (wallet, amount, description) into a payable invoice.
type InvoiceGenerator interface {
	Generate(ctx context.Context, wallet *ResolvedWallet, amountSats int64, description string) (*Invoice, error)
}

// WalletSession is one open NWC session. It is request-scoped: opened, used
// for exactly one operation, then closed under all exit paths.
type WalletSession interface {
	// MakeInvoice requests a bolt11 invoice for amountMsat with the given
	// description and expiry, returning the invoice and its payment hash.
	MakeInvoice(ctx context.Context, amountMsat int64, description string, expiry time.Duration) (invoice, paymentHash string, err error)
	// LookupInvoice reports the settlement timestamp for a payment hash, or
	// nil when the invoice has not settled.
	LookupInvoice(ctx context.Context, paymentHash string) (settledAt *time.Time, err error)
	// Close releases the session. Safe to call more than once.
	Close()
}

// WalletConnector opens sessions against a remote wallet controller.
type WalletConnector interface {
	Open(ctx context.Context, connectionURI string) (WalletSession, error)
}

// ProviderError carries a provider-level failure. The orchestrator collapses
// these into the generic invoice-generation error before they reach callers.
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
