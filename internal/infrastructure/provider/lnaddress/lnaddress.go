package lnaddress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/openagora/settlement/internal/domain/errors"
	"github.com/openagora/settlement/internal/domain/provider"
	"go.uber.org/zap"
)

const (
	wellKnownPrefix      = "/.well-known/lnurlp/"
	defaultInvoiceExpiry = time.Hour
)

// Generator obtains a bolt11 invoice for a lightning address via the two-step
// LNURL-pay negotiation: fetch the pay-request metadata from the well-known
// path, then hit its callback with the scaled amount. The protocol yields no
// settlement identifier, so settlement is buyer-attested.
type Generator struct {
	client        *http.Client
	invoiceExpiry time.Duration
	logger        *zap.Logger

	// scheme is https in production; tests point it at an httptest server.
	scheme string
}

func NewGenerator(client *http.Client, invoiceExpiry time.Duration, logger *zap.Logger) *Generator {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if invoiceExpiry <= 0 {
		invoiceExpiry = defaultInvoiceExpiry
	}
	return &Generator{
		client:        client,
		invoiceExpiry: invoiceExpiry,
		logger:        logger,
		scheme:        "https",
	}
}

// payRequest is the metadata served from the well-known path. Sendable bounds
// are declared in millisatoshis.
type payRequest struct {
	Tag            string `json:"tag"`
	Callback       string `json:"callback"`
	MinSendable    int64  `json:"minSendable"`
	MaxSendable    int64  `json:"maxSendable"`
	CommentAllowed int64  `json:"commentAllowed"`
}

type callbackResponse struct {
	PR     string `json:"pr"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (g *Generator) Generate(ctx context.Context, wallet *provider.ResolvedWallet, amountSats int64, description string) (*provider.Invoice, error) {
	local, domain, err := splitAddress(wallet.LightningAddress)
	if err != nil {
		return nil, err
	}

	meta, err := g.fetchPayRequest(ctx, local, domain)
	if err != nil {
		return nil, err
	}

	if meta.Tag != "payRequest" {
		return nil, &provider.ProviderError{
			Code:    "UNEXPECTED_TAG",
			Message: "endpoint did not declare a pay request",
			Details: meta.Tag,
		}
	}

	// The pay-request bounds are inclusive and in msat. A violation is a
	// user-actionable validation error and the callback is never issued.
	amountMsat := amountSats * 1000
	if amountMsat < meta.MinSendable || amountMsat > meta.MaxSendable {
		return nil, domainErrors.NewAmountBoundsError(amountMsat, meta.MinSendable, meta.MaxSendable)
	}

	pr, err := g.requestInvoice(ctx, meta, amountMsat, description)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(g.invoiceExpiry)

	g.logger.Info("lightning address invoice obtained",
		zap.String("domain", domain),
		zap.Int64("amount_sats", amountSats))

	return &provider.Invoice{
		PaymentRequest: pr,
		QRContent:      strings.ToUpper(pr),
		ExpiresAt:      &expiresAt,
	}, nil
}

func (g *Generator) fetchPayRequest(ctx context.Context, local, domain string) (*payRequest, error) {
	metaURL := fmt.Sprintf("%s://%s%s%s", g.scheme, domain, wellKnownPrefix, url.PathEscape(local))

	body, err := g.get(ctx, metaURL)
	if err != nil {
		return nil, err
	}

	var meta payRequest
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, &provider.ProviderError{
			Code:    "PARSE_ERROR",
			Message: "failed to parse pay request metadata",
			Details: err.Error(),
		}
	}
	return &meta, nil
}

func (g *Generator) requestInvoice(ctx context.Context, meta *payRequest, amountMsat int64, description string) (string, error) {
	callbackURL, err := url.Parse(meta.Callback)
	if err != nil {
		return "", &provider.ProviderError{
			Code:    "BAD_CALLBACK",
			Message: "pay request callback is not a valid URL",
			Details: err.Error(),
		}
	}

	q := callbackURL.Query()
	q.Set("amount", strconv.FormatInt(amountMsat, 10))
	if description != "" && meta.CommentAllowed > 0 {
		comment := description
		if int64(len(comment)) > meta.CommentAllowed {
			comment = comment[:meta.CommentAllowed]
		}
		q.Set("comment", comment)
	}
	callbackURL.RawQuery = q.Encode()

	body, err := g.get(ctx, callbackURL.String())
	if err != nil {
		return "", err
	}

	var resp callbackResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &provider.ProviderError{
			Code:    "PARSE_ERROR",
			Message: "failed to parse callback response",
			Details: err.Error(),
		}
	}
	if resp.PR == "" {
		return "", &provider.ProviderError{
			Code:    "NO_INVOICE",
			Message: "callback returned no payment request",
			Details: resp.Reason,
		}
	}
	return resp.PR, nil
}

func (g *Generator) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &provider.ProviderError{
			Code:    "REQUEST_ERROR",
			Message: "failed to create request",
			Details: err.Error(),
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("lnurl request failed", zap.Error(err))
		return nil, &provider.ProviderError{
			Code:    "API_ERROR",
			Message: "lnurl endpoint request failed",
			Details: err.Error(),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &provider.ProviderError{
			Code:    "RESPONSE_ERROR",
			Message: "failed to read response",
			Details: err.Error(),
		}
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.Error("lnurl endpoint returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(body)))
		return nil, &provider.ProviderError{
			Code:    "HTTP_" + strconv.Itoa(resp.StatusCode),
			Message: "lnurl endpoint returned non-OK status",
			Details: string(body),
		}
	}

	return body, nil
}

// splitAddress validates local@domain and fails fast on anything else.
func splitAddress(address string) (local, domain string, err error) {
	parts := strings.Split(address, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", domainErrors.ErrMalformedAddress
	}
	return parts[0], parts[1], nil
}
