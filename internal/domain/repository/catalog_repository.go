package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/openagora/settlement/internal/domain/model"
)

type ListingRepository interface {
	// GetByID loads the listing with its stall preloaded so the owning user
	// can be resolved through the indirection.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)

	// DecrementInventory atomically takes one unit of stock. It reports false
	// when the listing has no remaining inventory, so two concurrent
	// confirmations cannot both succeed against a single unit.
	DecrementInventory(ctx context.Context, id uuid.UUID) (bool, error)
}

type CampaignRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error)

	// AddRaised atomically adds a settled contribution to the running tally.
	AddRaised(ctx context.Context, id uuid.UUID, amountSats int64) error
}
