package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/openagora/settlement/internal/domain/model"
)

type WalletRepository interface {
	// ListActiveByUser returns the user's active wallets ordered primary-first
	// then oldest-first, so resolution is deterministic.
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.Wallet, error)
}
