package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/openagora/settlement/internal/domain/model"
	"github.com/openagora/settlement/internal/domain/provider"
	"github.com/stretchr/testify/mock"
)

// MockPaymentIntentRepository is a mock implementation of PaymentIntentRepository
type MockPaymentIntentRepository struct {
	mock.Mock
}

func (m *MockPaymentIntentRepository) Create(ctx context.Context, intent *model.PaymentIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

func (m *MockPaymentIntentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PaymentIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*model.PaymentIntent, error) {
	args := m.Called(ctx, buyerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*model.PaymentIntent, error) {
	args := m.Called(ctx, sellerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PaymentIntent), args.Error(1)
}

func (m *MockPaymentIntentRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, id, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentIntentRepository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentIntentRepository) MarkBuyerConfirmed(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByIntentID(ctx context.Context, intentID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*model.Order, error) {
	args := m.Called(ctx, buyerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*model.Order, error) {
	args := m.Called(ctx, sellerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) SetShipped(ctx context.Context, id uuid.UUID, trackingNumber, carrier string) error {
	args := m.Called(ctx, id, trackingNumber, carrier)
	return args.Error(0)
}

func (m *MockOrderRepository) SetNotes(ctx context.Context, id uuid.UUID, buyerNote, sellerNote *string) error {
	args := m.Called(ctx, id, buyerNote, sellerNote)
	return args.Error(0)
}

// MockContributionRepository is a mock implementation of ContributionRepository
type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) Create(ctx context.Context, contribution *model.Contribution) error {
	args := m.Called(ctx, contribution)
	return args.Error(0)
}

func (m *MockContributionRepository) GetByIntentID(ctx context.Context, intentID uuid.UUID) (*model.Contribution, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contribution), args.Error(1)
}

func (m *MockContributionRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID, limit, offset int) ([]*model.Contribution, error) {
	args := m.Called(ctx, campaignID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Contribution), args.Error(1)
}

// MockWalletRepository is a mock implementation of WalletRepository
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Wallet), args.Error(1)
}

// MockListingRepository is a mock implementation of ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) DecrementInventory(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockCampaignRepository is a mock implementation of CampaignRepository
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) AddRaised(ctx context.Context, id uuid.UUID, amountSats int64) error {
	args := m.Called(ctx, id, amountSats)
	return args.Error(0)
}

// MockShippingAddressRepository is a mock implementation of ShippingAddressRepository
type MockShippingAddressRepository struct {
	mock.Mock
}

func (m *MockShippingAddressRepository) Create(ctx context.Context, address *model.ShippingAddress) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockShippingAddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ShippingAddress, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShippingAddress), args.Error(1)
}

func (m *MockShippingAddressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.ShippingAddress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ShippingAddress), args.Error(1)
}

func (m *MockShippingAddressRepository) Update(ctx context.Context, address *model.ShippingAddress) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockShippingAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShippingAddressRepository) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	args := m.Called(ctx, userID, addressID)
	return args.Error(0)
}

// MockWalletResolver is a mock implementation of WalletResolver
type MockWalletResolver struct {
	mock.Mock
}

func (m *MockWalletResolver) OwnerUserID(ctx context.Context, entityType model.EntityType, entityID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, entityType, entityID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockWalletResolver) Resolve(ctx context.Context, entityType model.EntityType, entityID uuid.UUID) (*provider.ResolvedWallet, error) {
	args := m.Called(ctx, entityType, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.ResolvedWallet), args.Error(1)
}

// MockInvoiceGenerator is a mock implementation of InvoiceGenerator
type MockInvoiceGenerator struct {
	mock.Mock
}

func (m *MockInvoiceGenerator) Generate(ctx context.Context, wallet *provider.ResolvedWallet, amountSats int64, description string) (*provider.Invoice, error) {
	args := m.Called(ctx, wallet, amountSats, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Invoice), args.Error(1)
}

// MockWalletConnector is a mock implementation of WalletConnector
type MockWalletConnector struct {
	mock.Mock
}

func (m *MockWalletConnector) Open(ctx context.Context, connectionURI string) (provider.WalletSession, error) {
	args := m.Called(ctx, connectionURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(provider.WalletSession), args.Error(1)
}

// MockWalletSession is a mock implementation of WalletSession
type MockWalletSession struct {
	mock.Mock
}

func (m *MockWalletSession) MakeInvoice(ctx context.Context, amountMsat int64, description string, expiry time.Duration) (string, string, error) {
	args := m.Called(ctx, amountMsat, description, expiry)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockWalletSession) LookupInvoice(ctx context.Context, paymentHash string) (*time.Time, error) {
	args := m.Called(ctx, paymentHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockWalletSession) Close() {
	m.Called()
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PaymentSettled(ctx context.Context, intent *model.PaymentIntent) {
	m.Called(ctx, intent)
}

// MockEncryptionService is a mock implementation of crypto.EncryptionService
type MockEncryptionService struct {
	mock.Mock
}

func (m *MockEncryptionService) Encrypt(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockEncryptionService) Decrypt(blob string) (string, error) {
	args := m.Called(blob)
	return args.String(0), args.Error(1)
}
