package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openagora/settlement/internal/domain/model"
)

type PaymentIntentRepository interface {
	Create(ctx context.Context, intent *model.PaymentIntent) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentIntent, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*model.PaymentIntent, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*model.PaymentIntent, error)

	// MarkPaid sets status=paid and paid_at, guarded so the transition fires
	// at most once: it reports false when the intent was already terminal.
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error)

	// MarkExpired transitions a non-terminal intent to expired. Reports false
	// when the intent was already terminal.
	MarkExpired(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkBuyerConfirmed records the buyer's settlement assertion. Reports
	// false when the intent was already terminal.
	MarkBuyerConfirmed(ctx context.Context, id uuid.UUID) (bool, error)
}
