package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/openagora/settlement/internal/domain/errors"
	"github.com/openagora/settlement/internal/domain/model"
	"github.com/openagora/settlement/internal/domain/provider"
	"go.uber.org/zap"
)

const defaultNWCInvoiceExpiry = time.Hour

// InvoiceService dispatches invoice generation on the resolved method. The
// method set is closed; every branch returns the common Invoice shape.
type InvoiceService struct {
	connector        provider.WalletConnector
	lnAddress        provider.InvoiceGenerator
	onChain          provider.InvoiceGenerator
	nwcInvoiceExpiry time.Duration
	logger           *zap.Logger
}

func NewInvoiceService(
	connector provider.WalletConnector,
	lnAddress provider.InvoiceGenerator,
	onChain provider.InvoiceGenerator,
	nwcInvoiceExpiry time.Duration,
	logger *zap.Logger,
) *InvoiceService {
	if nwcInvoiceExpiry <= 0 {
		nwcInvoiceExpiry = defaultNWCInvoiceExpiry
	}
	return &InvoiceService{
		connector:        connector,
		lnAddress:        lnAddress,
		onChain:          onChain,
		nwcInvoiceExpiry: nwcInvoiceExpiry,
		logger:           logger,
	}
}

func (s *InvoiceService) Generate(ctx context.Context, wallet *provider.ResolvedWallet, amountSats int64, description string) (*provider.Invoice, error) {
	switch wallet.Method {
	case model.PaymentMethodNWC:
		return s.generateNWC(ctx, wallet, amountSats, description)
	case model.PaymentMethodLightningAddress:
		return s.lnAddress.Generate(ctx, wallet, amountSats, description)
	case model.PaymentMethodOnChain:
		return s.onChain.Generate(ctx, wallet, amountSats, description)
	default:
		return nil, fmt.Errorf("unsupported payment method %q", wallet.Method)
	}
}

// generateNWC requests an invoice over a request-scoped wallet session. Any
// transport failure collapses into the generic invoice-generation error;
// the detail is logged here and never reaches the caller.
func (s *InvoiceService) generateNWC(ctx context.Context, wallet *provider.ResolvedWallet, amountSats int64, description string) (*provider.Invoice, error) {
	session, err := s.connector.Open(ctx, wallet.NWCSecret)
	if err != nil {
		s.logger.Error("failed to open wallet session", zap.Error(err))
		return nil, domainErrors.ErrInvoiceGeneration
	}
	defer session.Close()

	bolt11, paymentHash, err := session.MakeInvoice(ctx, amountSats*1000, description, s.nwcInvoiceExpiry)
	if err != nil {
		s.logger.Error("wallet rejected invoice request",
			zap.Int64("amount_sats", amountSats),
			zap.Error(err))
		return nil, domainErrors.ErrInvoiceGeneration
	}

	expiresAt := time.Now().Add(s.nwcInvoiceExpiry)

	s.logger.Info("invoice created via wallet session",
		zap.Int64("amount_sats", amountSats))

	return &provider.Invoice{
		PaymentRequest: bolt11,
		SettlementID:   paymentHash,
		QRContent:      strings.ToUpper(bolt11),
		ExpiresAt:      &expiresAt,
	}, nil
}
