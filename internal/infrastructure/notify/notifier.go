// Package notify provides the settlement notification sink. The default
// implementation only records the event; a push or relay-backed notifier can
// replace it without touching the settlement path.
package notify

import (
	"context"

	"github.com/openagora/settlement/internal/domain/model"
	"github.com/openagora/settlement/internal/domain/provider"
	"go.uber.org/zap"
)

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier returns a Notifier that logs settled payments.
func NewLogNotifier(logger *zap.Logger) provider.Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) PaymentSettled(ctx context.Context, intent *model.PaymentIntent) {
	n.logger.Info("payment settled notification",
		zap.String("intent_id", intent.ID.String()),
		zap.String("buyer_id", intent.BuyerID.String()),
		zap.String("seller_id", intent.SellerID.String()),
		zap.String("entity_type", string(intent.EntityType)),
		zap.String("entity_id", intent.EntityID.String()),
		zap.Int64("amount_sats", intent.AmountSats),
		zap.String("method", string(intent.Method)),
	)
}
