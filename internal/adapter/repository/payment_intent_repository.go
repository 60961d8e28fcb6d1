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

type paymentIntentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewPaymentIntentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.PaymentIntentRepository {
	return &paymentIntentRepository{db: db, logger: logger}
}

// terminalStatuses guard every transition: an intent never leaves paid,
// expired or failed.
var terminalStatuses = []model.IntentStatus{
	model.IntentStatusPaid,
	model.IntentStatusExpired,
	model.IntentStatusFailed,
}

func (r *paymentIntentRepository) Create(ctx context.Context, intent *model.PaymentIntent) error {
	return r.db.WithContext(ctx).Create(intent).Error
}

func (r *paymentIntentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentIntent, error) {
	var intent model.PaymentIntent
	if err := r.db.WithContext(ctx).First(&intent, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &intent, nil
}

func (r *paymentIntentRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*model.PaymentIntent, error) {
	var intents []*model.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&intents).Error
	return intents, err
}

func (r *paymentIntentRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*model.PaymentIntent, error) {
	var intents []*model.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&intents).Error
	return intents, err
}

func (r *paymentIntentRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	return r.transition(ctx, id, map[string]interface{}{
		"status":     model.IntentStatusPaid,
		"paid_at":    paidAt,
		"updated_at": time.Now(),
	})
}

func (r *paymentIntentRepository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(ctx, id, map[string]interface{}{
		"status":     model.IntentStatusExpired,
		"updated_at": time.Now(),
	})
}

func (r *paymentIntentRepository) MarkBuyerConfirmed(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(ctx, id, map[string]interface{}{
		"status":     model.IntentStatusBuyerConfirmed,
		"updated_at": time.Now(),
	})
}

// transition performs a single conditional UPDATE so concurrent callers race
// on the database row, not on in-process state. RowsAffected == 0 means the
// intent was already terminal and the transition did not fire.
func (r *paymentIntentRepository) transition(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.PaymentIntent{}).
		Where("id = ? AND status NOT IN ?", id, terminalStatuses).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
