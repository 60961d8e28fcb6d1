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

type shippingAddressRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewShippingAddressRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ShippingAddressRepository {
	return &shippingAddressRepository{db: db, logger: logger}
}

func (r *shippingAddressRepository) Create(ctx context.Context, address *model.ShippingAddress) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *shippingAddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ShippingAddress, error) {
	var address model.ShippingAddress
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *shippingAddressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.ShippingAddress, error) {
	var addresses []*model.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&addresses).Error
	return addresses, err
}

func (r *shippingAddressRepository) Update(ctx context.Context, address *model.ShippingAddress) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *shippingAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ShippingAddress{}, "id = ?", id).Error
}

// SetDefault unsets any previous default and marks the new one inside a
// single transaction, so exactly one default can exist per user.
func (r *shippingAddressRepository) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ShippingAddress{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Updates(map[string]interface{}{
				"is_default": false,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		result := tx.Model(&model.ShippingAddress{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Updates(map[string]interface{}{
				"is_default": true,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
