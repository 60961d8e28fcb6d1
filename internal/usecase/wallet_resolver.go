package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	domainErrors "github.com/openagora/settlement/internal/domain/errors"
	"github.com/openagora/settlement/internal/domain/model"
	"github.com/openagora/settlement/internal/domain/provider"
	"github.com/openagora/settlement/internal/domain/repository"
	"github.com/openagora/settlement/internal/infrastructure/crypto"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WalletResolver finds the owning user of a sellable entity and selects the
// payment method used to pay them.
type WalletResolver interface {
	OwnerUserID(ctx context.Context, entityType model.EntityType, entityID uuid.UUID) (uuid.UUID, error)
	Resolve(ctx context.Context, entityType model.EntityType, entityID uuid.UUID) (*provider.ResolvedWallet, error)
}

// ownerLookup resolves an entity id to its owning user id. Listings are owned
// through their stall, campaigns directly; new entity types register here
// instead of branching through the resolver.
type ownerLookup func(ctx context.Context, entityID uuid.UUID) (uuid.UUID, error)

type WalletResolverService struct {
	walletRepo     repository.WalletRepository
	encryptService crypto.EncryptionService
	logger         *zap.Logger
	owners         map[model.EntityType]ownerLookup
}

func NewWalletResolverService(
	walletRepo repository.WalletRepository,
	listingRepo repository.ListingRepository,
	campaignRepo repository.CampaignRepository,
	encryptService crypto.EncryptionService,
	logger *zap.Logger,
) *WalletResolverService {
	s := &WalletResolverService{
		walletRepo:     walletRepo,
		encryptService: encryptService,
		logger:         logger,
	}

	s.owners = map[model.EntityType]ownerLookup{
		model.EntityTypeListing: func(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
			listing, err := listingRepo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return uuid.Nil, domainErrors.ErrSellerNotFound
				}
				return uuid.Nil, fmt.Errorf("failed to load listing: %w", err)
			}
			if listing.Stall == nil {
				return uuid.Nil, domainErrors.ErrSellerNotFound
			}
			return listing.Stall.UserID, nil
		},
		model.EntityTypeCampaign: func(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
			campaign, err := campaignRepo.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return uuid.Nil, domainErrors.ErrSellerNotFound
				}
				return uuid.Nil, fmt.Errorf("failed to load campaign: %w", err)
			}
			return campaign.UserID, nil
		},
	}

	return s
}

// OwnerUserID resolves only the owning principal, letting callers validate
// buyer != seller before any wallet work is attempted.
func (s *WalletResolverService) OwnerUserID(ctx context.Context, entityType model.EntityType, entityID uuid.UUID) (uuid.UUID, error) {
	lookup, ok := s.owners[entityType]
	if !ok {
		return uuid.Nil, fmt.Errorf("unknown entity type %q", entityType)
	}
	return lookup(ctx, entityID)
}

// Resolve selects exactly one payment method for the entity's owner by strict
// priority: NWC, lightning address, on-chain flag, then any raw address as a
// last resort. A wallet whose NWC secret fails to decrypt is skipped, not
// fatal. ErrNoWallet means the seller cannot currently receive payment.
func (s *WalletResolverService) Resolve(ctx context.Context, entityType model.EntityType, entityID uuid.UUID) (*provider.ResolvedWallet, error) {
	ownerID, err := s.OwnerUserID(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}

	wallets, err := s.walletRepo.ListActiveByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	// Tier 1: NWC. Decryption failure falls through to the next candidate.
	for _, w := range wallets {
		if w.EncryptedNWCSecret == nil || *w.EncryptedNWCSecret == "" {
			continue
		}
		secret, err := s.encryptService.Decrypt(*w.EncryptedNWCSecret)
		if err != nil {
			s.logger.Warn("failed to decrypt wallet connection secret, skipping wallet",
				zap.String("wallet_id", w.ID.String()),
				zap.Error(err))
			continue
		}
		return &provider.ResolvedWallet{
			Method:    model.PaymentMethodNWC,
			NWCSecret: secret,
		}, nil
	}

	// Tier 2: lightning address.
	for _, w := range wallets {
		if w.LightningAddress != nil && *w.LightningAddress != "" {
			return &provider.ResolvedWallet{
				Method:           model.PaymentMethodLightningAddress,
				LightningAddress: *w.LightningAddress,
			}, nil
		}
	}

	// Tier 3: wallets flagged on-chain capable.
	for _, w := range wallets {
		if w.OnchainCapable && w.OnchainAddress != nil && *w.OnchainAddress != "" {
			return &provider.ResolvedWallet{
				Method:         model.PaymentMethodOnChain,
				OnchainAddress: *w.OnchainAddress,
			}, nil
		}
	}

	// Tier 4: any wallet with a raw address, treated as on-chain.
	for _, w := range wallets {
		if w.OnchainAddress != nil && *w.OnchainAddress != "" {
			return &provider.ResolvedWallet{
				Method:         model.PaymentMethodOnChain,
				OnchainAddress: *w.OnchainAddress,
			}, nil
		}
	}

	return nil, domainErrors.ErrNoWallet
}
