package database

import (
	"github.com/openagora/settlement/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := createExtensions(db); err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.Stall{},
		&model.Listing{},
		&model.Campaign{},
		&model.Wallet{},
		&model.PaymentIntent{},
		&model.Order{},
		&model.Contribution{},
		&model.ShippingAddress{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

func createExtensions(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
}

// createCustomIndexes creates partial indexes GORM tags cannot express.
func createCustomIndexes(db *gorm.DB) error {
	// Non-terminal intents are the hot set for expiry sweeps and status polls.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_payment_intents_open ON payment_intents (expires_at) WHERE status IN ('created', 'invoice_ready')`).Error; err != nil {
		return err
	}

	// One default shipping address per user.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_default_address_per_user ON shipping_addresses (user_id) WHERE is_default = true`).Error; err != nil {
		return err
	}

	// One primary wallet per user among active wallets.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_primary_wallet_per_user ON wallets (user_id) WHERE is_primary = true AND is_active = true`).Error; err != nil {
		return err
	}

	return nil
}
