package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	domainErrors "github.com/openagora/settlement/internal/domain/errors"
	"github.com/openagora/settlement/internal/domain/model"
	"github.com/openagora/settlement/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShippingService manages buyer shipping addresses. Default-address
// exclusivity is enforced atomically at the repository layer.
type ShippingService struct {
	addressRepo repository.ShippingAddressRepository
	logger      *zap.Logger
}

func NewShippingService(addressRepo repository.ShippingAddressRepository, logger *zap.Logger) *ShippingService {
	return &ShippingService{addressRepo: addressRepo, logger: logger}
}

func (s *ShippingService) Create(ctx context.Context, userID uuid.UUID, address *model.ShippingAddress) (*model.ShippingAddress, error) {
	address.ID = uuid.New()
	address.UserID = userID

	makeDefault := address.IsDefault
	address.IsDefault = false

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to create shipping address: %w", err)
	}

	if makeDefault {
		if err := s.addressRepo.SetDefault(ctx, userID, address.ID); err != nil {
			return nil, fmt.Errorf("failed to set default address: %w", err)
		}
		address.IsDefault = true
	}

	return address, nil
}

func (s *ShippingService) List(ctx context.Context, userID uuid.UUID) ([]*model.ShippingAddress, error) {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipping addresses: %w", err)
	}
	return addresses, nil
}

func (s *ShippingService) Update(ctx context.Context, userID uuid.UUID, address *model.ShippingAddress) (*model.ShippingAddress, error) {
	existing, err := s.loadOwned(ctx, userID, address.ID)
	if err != nil {
		return nil, err
	}

	// Default flag changes only go through SetDefault.
	address.UserID = existing.UserID
	address.IsDefault = existing.IsDefault

	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to update shipping address: %w", err)
	}
	return address, nil
}

func (s *ShippingService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, addressID); err != nil {
		return err
	}
	if err := s.addressRepo.Delete(ctx, addressID); err != nil {
		return fmt.Errorf("failed to delete shipping address: %w", err)
	}
	return nil
}

// SetDefault marks one address as default, atomically unsetting any previous
// default for the same user.
func (s *ShippingService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, addressID); err != nil {
		return err
	}
	if err := s.addressRepo.SetDefault(ctx, userID, addressID); err != nil {
		return fmt.Errorf("failed to set default address: %w", err)
	}
	return nil
}

func (s *ShippingService) loadOwned(ctx context.Context, userID, addressID uuid.UUID) (*model.ShippingAddress, error) {
	address, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotOwner
		}
		return nil, fmt.Errorf("failed to load shipping address: %w", err)
	}
	if address.UserID != userID {
		return nil, domainErrors.ErrNotOwner
	}
	return address, nil
}
