package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/openagora/settlement/internal/domain/model"
	domainRepo "github.com/openagora/settlement/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type walletRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewWalletRepository(db *gorm.DB, logger *zap.Logger) domainRepo.WalletRepository {
	return &walletRepository{db: db, logger: logger}
}

// ListActiveByUser orders primary-first then oldest-first so method selection
// is deterministic across calls.
func (r *walletRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.Wallet, error) {
	var wallets []*model.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("is_primary DESC, created_at ASC").
		Find(&wallets).Error
	return wallets, err
}
