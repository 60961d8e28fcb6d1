package provider

import (
	"context"

	"github.com/openagora/settlement/internal/domain/model"
)

// Notifier is the fire-and-forget hook fired when a payment settles.
// Implementations must not block settlement; errors are ignored by callers.
type Notifier interface {
	PaymentSettled(ctx context.Context, intent *model.PaymentIntent)
}
