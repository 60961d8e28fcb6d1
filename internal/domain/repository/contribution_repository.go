package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/openagora/settlement/internal/domain/model"
)

type ContributionRepository interface {
	Create(ctx context.Context, contribution *model.Contribution) error
	GetByIntentID(ctx context.Context, intentID uuid.UUID) (*model.Contribution, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*model.Contribution, error)
}
