package database

import (
	"github.com/openagora/settlement/internal/adapter/repository"
	domainRepo "github.com/openagora/settlement/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	PaymentIntent   domainRepo.PaymentIntentRepository
	Order           domainRepo.OrderRepository
	Contribution    domainRepo.ContributionRepository
	Wallet          domainRepo.WalletRepository
	Listing         domainRepo.ListingRepository
	Campaign        domainRepo.CampaignRepository
	ShippingAddress domainRepo.ShippingAddressRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		PaymentIntent:   repository.NewPaymentIntentRepository(db, logger),
		Order:           repository.NewOrderRepository(db, logger),
		Contribution:    repository.NewContributionRepository(db, logger),
		Wallet:          repository.NewWalletRepository(db, logger),
		Listing:         repository.NewListingRepository(db, logger),
		Campaign:        repository.NewCampaignRepository(db, logger),
		ShippingAddress: repository.NewShippingAddressRepository(db, logger),
	}
}
