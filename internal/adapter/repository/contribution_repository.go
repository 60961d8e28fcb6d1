package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/openagora/settlement/internal/domain/model"
	domainRepo "github.com/openagora/settlement/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contributionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewContributionRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ContributionRepository {
	return &contributionRepository{db: db, logger: logger}
}

func (r *contributionRepository) Create(ctx context.Context, contribution *model.Contribution) error {
	return r.db.WithContext(ctx).Create(contribution).Error
}

func (r *contributionRepository) GetByIntentID(ctx context.Context, intentID uuid.UUID) (*model.Contribution, error) {
	var contribution model.Contribution
	if err := r.db.WithContext(ctx).First(&contribution, "intent_id = ?", intentID).Error; err != nil {
		return nil, err
	}
	return &contribution, nil
}

func (r *contributionRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*model.Contribution, error) {
	var contributions []*model.Contribution
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&contributions).Error
	return contributions, err
}
