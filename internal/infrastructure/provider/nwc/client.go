package nwc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip04"
	"github.com/openagora/settlement/internal/domain/provider"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 30 * time.Second

// Connector opens NIP-47 wallet sessions from a nostr+walletconnect URI.
type Connector struct {
	timeout time.Duration
	logger  *zap.Logger
}

func NewConnector(timeout time.Duration, logger *zap.Logger) *Connector {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Connector{timeout: timeout, logger: logger}
}

type connection struct {
	walletPubKey string
	relayURL     string
	secret       string
}

// parseConnectionURI splits nostr+walletconnect://<pubkey>?relay=...&secret=...
func parseConnectionURI(raw string) (*connection, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid connection uri: %w", err)
	}
	if u.Scheme != "nostr+walletconnect" {
		return nil, fmt.Errorf("unexpected connection uri scheme %q", u.Scheme)
	}

	pubKey := u.Host
	if pubKey == "" {
		pubKey = u.Opaque
	}
	relayURL := u.Query().Get("relay")
	secret := u.Query().Get("secret")

	if pubKey == "" || relayURL == "" || secret == "" {
		return nil, fmt.Errorf("connection uri missing pubkey, relay or secret")
	}

	return &connection{walletPubKey: pubKey, relayURL: relayURL, secret: secret}, nil
}

// Open connects to the wallet's relay and derives the conversation key. The
// returned session is valid for exactly one operation and must be closed by
// the caller under all exit paths.
func (c *Connector) Open(ctx context.Context, connectionURI string) (provider.WalletSession, error) {
	conn, err := parseConnectionURI(connectionURI)
	if err != nil {
		return nil, err
	}

	clientPubKey, err := nostr.GetPublicKey(conn.secret)
	if err != nil {
		return nil, fmt.Errorf("invalid connection secret: %w", err)
	}

	sharedSecret, err := nip04.ComputeSharedSecret(conn.walletPubKey, conn.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to derive conversation key: %w", err)
	}

	relay, err := nostr.RelayConnect(ctx, conn.relayURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to relay: %w", err)
	}

	return &session{
		relay:        relay,
		walletPubKey: conn.walletPubKey,
		clientPubKey: clientPubKey,
		secret:       conn.secret,
		sharedSecret: sharedSecret,
		timeout:      c.timeout,
		logger:       c.logger,
	}, nil
}

type session struct {
	relay        *nostr.Relay
	walletPubKey string
	clientPubKey string
	secret       string
	sharedSecret []byte
	timeout      time.Duration
	logger       *zap.Logger
	closeOnce    sync.Once
}

type walletRequest struct {
	Method string      `json:"method"`
	Params interface{} `json:"params"`
}

type walletResponse struct {
	ResultType string          `json:"result_type"`
	Error      *walletError    `json:"error"`
	Result     json.RawMessage `json:"result"`
}

type walletError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type makeInvoiceParams struct {
	Amount      int64  `json:"amount"` // msat
	Description string `json:"description,omitempty"`
	Expiry      int64  `json:"expiry,omitempty"` // seconds
}

type makeInvoiceResult struct {
	Invoice     string `json:"invoice"`
	PaymentHash string `json:"payment_hash"`
}

type lookupInvoiceParams struct {
	PaymentHash string `json:"payment_hash"`
}

type lookupInvoiceResult struct {
	SettledAt *int64 `json:"settled_at"`
}

func (s *session) MakeInvoice(ctx context.Context, amountMsat int64, description string, expiry time.Duration) (string, string, error) {
	raw, err := s.rpc(ctx, "make_invoice", makeInvoiceParams{
		Amount:      amountMsat,
		Description: description,
		Expiry:      int64(expiry.Seconds()),
	})
	if err != nil {
		return "", "", err
	}

	var result makeInvoiceResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", "", fmt.Errorf("failed to parse make_invoice result: %w", err)
	}
	if result.Invoice == "" {
		return "", "", fmt.Errorf("wallet returned no invoice")
	}
	return result.Invoice, result.PaymentHash, nil
}

func (s *session) LookupInvoice(ctx context.Context, paymentHash string) (*time.Time, error) {
	raw, err := s.rpc(ctx, "lookup_invoice", lookupInvoiceParams{PaymentHash: paymentHash})
	if err != nil {
		return nil, err
	}

	var result lookupInvoiceResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to parse lookup_invoice result: %w", err)
	}
	if result.SettledAt == nil {
		return nil, nil
	}
	settled := time.Unix(*result.SettledAt, 0)
	return &settled, nil
}

func (s *session) Close() {
	s.closeOnce.Do(func() {
		if err := s.relay.Close(); err != nil {
			s.logger.Debug("relay close failed", zap.Error(err))
		}
	})
}

// rpc publishes one encrypted request event and waits for the matching
// response event from the wallet.
func (s *session) rpc(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := json.Marshal(walletRequest{Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	content, err := nip04.Encrypt(string(payload), s.sharedSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt %s request: %w", method, err)
	}

	ev := nostr.Event{
		PubKey:    s.clientPubKey,
		CreatedAt: nostr.Now(),
		Kind:      nostr.KindNWCWalletRequest,
		Tags:      nostr.Tags{{"p", s.walletPubKey}},
		Content:   content,
	}
	if err := ev.Sign(s.secret); err != nil {
		return nil, fmt.Errorf("failed to sign %s request: %w", method, err)
	}

	sub, err := s.relay.Subscribe(ctx, nostr.Filters{{
		Kinds:   []int{nostr.KindNWCWalletResponse},
		Authors: []string{s.walletPubKey},
		Tags:    nostr.TagMap{"e": []string{ev.ID}},
		Limit:   1,
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe for %s response: %w", method, err)
	}
	defer sub.Unsub()

	if err := s.relay.Publish(ctx, ev); err != nil {
		return nil, fmt.Errorf("failed to publish %s request: %w", method, err)
	}

	select {
	case respEv := <-sub.Events:
		if respEv == nil {
			return nil, fmt.Errorf("relay closed while waiting for %s response", method)
		}
		plaintext, err := nip04.Decrypt(respEv.Content, s.sharedSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt %s response: %w", method, err)
		}

		var resp walletResponse
		if err := json.Unmarshal([]byte(plaintext), &resp); err != nil {
			return nil, fmt.Errorf("failed to parse %s response: %w", method, err)
		}
		if resp.Error != nil {
			return nil, &provider.ProviderError{
				Code:    resp.Error.Code,
				Message: "wallet rejected " + method,
				Details: resp.Error.Message,
			}
		}
		return resp.Result, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("timed out waiting for %s response: %w", method, ctx.Err())
	}
}
