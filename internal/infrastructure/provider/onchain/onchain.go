package onchain

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/openagora/settlement/internal/domain/provider"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultSoftExpiry = 24 * time.Hour

// Generator builds BIP-21 payment URIs. No network calls are involved; the
// expiry is a soft window only, since on-chain payments have no hard timeout.
type Generator struct {
	softExpiry time.Duration
	logger     *zap.Logger
}

func NewGenerator(softExpiry time.Duration, logger *zap.Logger) *Generator {
	if softExpiry <= 0 {
		softExpiry = defaultSoftExpiry
	}
	return &Generator{softExpiry: softExpiry, logger: logger}
}

func (g *Generator) Generate(_ context.Context, wallet *provider.ResolvedWallet, amountSats int64, description string) (*provider.Invoice, error) {
	if wallet.OnchainAddress == "" {
		return nil, &provider.ProviderError{
			Code:    "MISSING_ADDRESS",
			Message: "wallet has no on-chain address",
		}
	}

	btc := decimal.NewFromInt(amountSats).Shift(-8).StringFixed(8)

	uri := fmt.Sprintf("bitcoin:%s?amount=%s", wallet.OnchainAddress, btc)
	if description != "" {
		uri += "&label=" + url.QueryEscape(description)
	}

	expiresAt := time.Now().Add(g.softExpiry)

	g.logger.Info("built on-chain payment URI",
		zap.String("address", wallet.OnchainAddress),
		zap.Int64("amount_sats", amountSats))

	return &provider.Invoice{
		PaymentRequest: uri,
		OnchainAddress: wallet.OnchainAddress,
		QRContent:      uri,
		ExpiresAt:      &expiresAt,
	}, nil
}
