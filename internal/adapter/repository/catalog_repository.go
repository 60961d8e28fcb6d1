package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openagora/settlement/internal/domain/model"
	domainRepo "github.com/openagora/settlement/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type listingRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewListingRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ListingRepository {
	return &listingRepository{db: db, logger: logger}
}

func (r *listingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).Preload("Stall").First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// DecrementInventory is a single conditional UPDATE: under concurrent
// settlement only one caller can take the last unit.
func (r *listingRepository) DecrementInventory(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ? AND inventory > 0", id).
		Updates(map[string]interface{}{
			"inventory":  gorm.Expr("inventory - 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type campaignRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCampaignRepository(db *gorm.DB, logger *zap.Logger) domainRepo.CampaignRepository {
	return &campaignRepository{db: db, logger: logger}
}

func (r *campaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) AddRaised(ctx context.Context, id uuid.UUID, amountSats int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Campaign{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"raised_sats": gorm.Expr("raised_sats + ?", amountSats),
			"updated_at":  time.Now(),
		}).Error
}
