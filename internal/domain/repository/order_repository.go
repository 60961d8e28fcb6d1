package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/openagora/settlement/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetByIntentID(ctx context.Context, intentID uuid.UUID) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*model.Order, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
	SetShipped(ctx context.Context, id uuid.UUID, trackingNumber, carrier string) error
	SetNotes(ctx context.Context, id uuid.UUID, buyerNote, sellerNote *string) error
}
