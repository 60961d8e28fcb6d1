package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/openagora/settlement/internal/domain/model"
)

type ShippingAddressRepository interface {
	Create(ctx context.Context, address *model.ShippingAddress) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ShippingAddress, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.ShippingAddress, error)
	Update(ctx context.Context, address *model.ShippingAddress) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SetDefault marks one address as the user's default and atomically
	// unsets any previous default for that user.
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error
}
