package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	domainErrors "github.com/openagora/settlement/internal/domain/errors"
	"github.com/openagora/settlement/internal/domain/model"
	"github.com/openagora/settlement/internal/domain/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type paymentServiceMocks struct {
	intents       *MockPaymentIntentRepository
	orders        *MockOrderRepository
	contributions *MockContributionRepository
	listings      *MockListingRepository
	campaigns     *MockCampaignRepository
	resolver      *MockWalletResolver
	invoices      *MockInvoiceGenerator
	connector     *MockWalletConnector
	notifier      *MockNotifier
}

func newPaymentServiceWithMocks() (*PaymentService, *paymentServiceMocks) {
	m := &paymentServiceMocks{
		intents:       new(MockPaymentIntentRepository),
		orders:        new(MockOrderRepository),
		contributions: new(MockContributionRepository),
		listings:      new(MockListingRepository),
		campaigns:     new(MockCampaignRepository),
		resolver:      new(MockWalletResolver),
		invoices:      new(MockInvoiceGenerator),
		connector:     new(MockWalletConnector),
		notifier:      new(MockNotifier),
	}
	service := NewPaymentService(
		m.intents,
		m.orders,
		m.contributions,
		m.listings,
		m.campaigns,
		m.resolver,
		m.invoices,
		m.connector,
		m.notifier,
		zap.NewNop(),
	)
	return service, m
}

func TestPaymentService_InitiatePayment_SelfPaymentRejectedBeforeWalletWork(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	buyerID := uuid.New()
	listingID := uuid.New()

	m.resolver.On("OwnerUserID", mock.Anything, model.EntityTypeListing, listingID).
		Return(buyerID, nil)

	_, err := service.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{
		EntityType: model.EntityTypeListing,
		EntityID:   listingID,
	})

	assert.ErrorIs(t, err, domainErrors.ErrSelfPayment)
	m.resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	m.invoices.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.intents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_InitiatePayment_ListingPriceIsAuthoritative(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	buyerID := uuid.New()
	sellerID := uuid.New()
	listingID := uuid.New()

	wallet := &provider.ResolvedWallet{
		Method:           model.PaymentMethodLightningAddress,
		LightningAddress: "seller@zap.example",
	}
	expiresAt := time.Now().Add(time.Hour)

	m.resolver.On("OwnerUserID", mock.Anything, model.EntityTypeListing, listingID).
		Return(sellerID, nil)
	m.resolver.On("Resolve", mock.Anything, model.EntityTypeListing, listingID).
		Return(wallet, nil)
	m.listings.On("GetByID", mock.Anything, listingID).
		Return(&model.Listing{
			ID:        listingID,
			Title:     "Hand-forged knife",
			PriceSats: 50000,
			Inventory: 3,
			IsActive:  true,
		}, nil)
	// The caller-supplied amount must never reach the generator.
	m.invoices.On("Generate", mock.Anything, wallet, int64(50000), "Hand-forged knife").
		Return(&provider.Invoice{
			PaymentRequest: "lnbc500u1...",
			QRContent:      "LNBC500U1...",
			ExpiresAt:      &expiresAt,
		}, nil)
	m.intents.On("Create", mock.Anything, mock.AnythingOfType("*model.PaymentIntent")).Return(nil)
	m.orders.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

	result, err := service.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{
		EntityType: model.EntityTypeListing,
		EntityID:   listingID,
		AmountSats: 99, // ignored
		BuyerNote:  "please gift wrap",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(50000), result.Intent.AmountSats)
	assert.Equal(t, model.IntentStatusInvoiceReady, result.Intent.Status)
	assert.Equal(t, "LNBC500U1...", result.QRContent)
	assert.NotNil(t, result.ExpiresInSeconds)
	assert.NotNil(t, result.Order)
	assert.Equal(t, "Hand-forged knife", result.Order.TitleSnapshot)
	assert.Equal(t, model.OrderStatusPendingPayment, result.Order.Status)
	assert.Equal(t, "please gift wrap", result.Order.BuyerNote)
	assert.Nil(t, result.Contribution)
	m.invoices.AssertExpectations(t)
}

func TestPaymentService_InitiatePayment_CampaignRequiresAmount(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	buyerID := uuid.New()
	sellerID := uuid.New()
	campaignID := uuid.New()

	m.resolver.On("OwnerUserID", mock.Anything, model.EntityTypeCampaign, campaignID).
		Return(sellerID, nil)
	m.resolver.On("Resolve", mock.Anything, model.EntityTypeCampaign, campaignID).
		Return(&provider.ResolvedWallet{Method: model.PaymentMethodOnChain, OnchainAddress: "bc1qxyz"}, nil)
	m.campaigns.On("GetByID", mock.Anything, campaignID).
		Return(&model.Campaign{ID: campaignID, UserID: sellerID, Title: "Fix the roof", IsActive: true}, nil)

	_, err := service.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{
		EntityType: model.EntityTypeCampaign,
		EntityID:   campaignID,
		AmountSats: 0,
	})

	assert.ErrorIs(t, err, domainErrors.ErrAmountRequired)
	m.invoices.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.intents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_InitiatePayment_CampaignContribution(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	buyerID := uuid.New()
	sellerID := uuid.New()
	campaignID := uuid.New()
	message := "keep going!"

	wallet := &provider.ResolvedWallet{Method: model.PaymentMethodOnChain, OnchainAddress: "bc1qxyz"}

	m.resolver.On("OwnerUserID", mock.Anything, model.EntityTypeCampaign, campaignID).
		Return(sellerID, nil)
	m.resolver.On("Resolve", mock.Anything, model.EntityTypeCampaign, campaignID).
		Return(wallet, nil)
	m.campaigns.On("GetByID", mock.Anything, campaignID).
		Return(&model.Campaign{ID: campaignID, UserID: sellerID, Title: "Fix the roof", IsActive: true}, nil)
	m.invoices.On("Generate", mock.Anything, wallet, int64(21000), "Fix the roof").
		Return(&provider.Invoice{
			PaymentRequest: "bitcoin:bc1qxyz?amount=0.00021000",
			OnchainAddress: "bc1qxyz",
			QRContent:      "bitcoin:bc1qxyz?amount=0.00021000",
		}, nil)
	m.intents.On("Create", mock.Anything, mock.AnythingOfType("*model.PaymentIntent")).Return(nil)
	m.contributions.On("Create", mock.Anything, mock.AnythingOfType("*model.Contribution")).Return(nil)

	result, err := service.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{
		EntityType: model.EntityTypeCampaign,
		EntityID:   campaignID,
		AmountSats: 21000,
		Message:    &message,
		Anonymous:  true,
	})

	assert.NoError(t, err)
	assert.NotNil(t, result.Contribution)
	assert.Equal(t, int64(21000), result.Contribution.AmountSats)
	assert.True(t, result.Contribution.Anonymous)
	assert.Equal(t, &message, result.Contribution.Message)
	assert.Nil(t, result.Order)
	assert.Equal(t, model.PaymentMethodOnChain, result.Intent.Method)
	assert.Equal(t, "bc1qxyz", *result.Intent.OnchainAddress)
}

func TestPaymentService_InitiatePayment_NoIntentPersistedOnGenerationFailure(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	buyerID := uuid.New()
	sellerID := uuid.New()
	listingID := uuid.New()

	wallet := &provider.ResolvedWallet{Method: model.PaymentMethodNWC, NWCSecret: "nostr+walletconnect://abc"}

	m.resolver.On("OwnerUserID", mock.Anything, model.EntityTypeListing, listingID).
		Return(sellerID, nil)
	m.resolver.On("Resolve", mock.Anything, model.EntityTypeListing, listingID).
		Return(wallet, nil)
	m.listings.On("GetByID", mock.Anything, listingID).
		Return(&model.Listing{ID: listingID, Title: "Knife", PriceSats: 50000, Inventory: 1, IsActive: true}, nil)
	m.invoices.On("Generate", mock.Anything, wallet, int64(50000), "Knife").
		Return(nil, domainErrors.ErrInvoiceGeneration)

	_, err := service.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{
		EntityType: model.EntityTypeListing,
		EntityID:   listingID,
	})

	assert.ErrorIs(t, err, domainErrors.ErrInvoiceGeneration)
	m.intents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_InitiatePayment_UnavailableListing(t *testing.T) {
	tests := []struct {
		name    string
		listing *model.Listing
	}{
		{
			name:    "inactive listing",
			listing: &model.Listing{Title: "Knife", PriceSats: 100, Inventory: 5, IsActive: false},
		},
		{
			name:    "sold out listing",
			listing: &model.Listing{Title: "Knife", PriceSats: 100, Inventory: 0, IsActive: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newPaymentServiceWithMocks()
			buyerID := uuid.New()
			sellerID := uuid.New()
			listingID := uuid.New()
			tt.listing.ID = listingID

			m.resolver.On("OwnerUserID", mock.Anything, model.EntityTypeListing, listingID).
				Return(sellerID, nil)
			m.resolver.On("Resolve", mock.Anything, model.EntityTypeListing, listingID).
				Return(&provider.ResolvedWallet{Method: model.PaymentMethodOnChain, OnchainAddress: "bc1q"}, nil)
			m.listings.On("GetByID", mock.Anything, listingID).Return(tt.listing, nil)

			_, err := service.InitiatePayment(context.Background(), buyerID, InitiatePaymentInput{
				EntityType: model.EntityTypeListing,
				EntityID:   listingID,
			})

			assert.ErrorIs(t, err, domainErrors.ErrEntityUnavailable)
			m.invoices.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPaymentService_CheckStatus_ParticipantOnly(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	intentID := uuid.New()
	stranger := uuid.New()

	m.intents.On("GetByID", mock.Anything, intentID).
		Return(&model.PaymentIntent{
			ID:       intentID,
			BuyerID:  uuid.New(),
			SellerID: uuid.New(),
			Status:   model.IntentStatusInvoiceReady,
		}, nil)

	_, err := service.CheckStatus(context.Background(), stranger, intentID)
	assert.ErrorIs(t, err, domainErrors.ErrNotParticipant)
}

func TestPaymentService_CheckStatus_TerminalIntentReturnsAsIs(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	intentID := uuid.New()
	buyerID := uuid.New()
	paidAt := time.Now().Add(-time.Minute)

	m.intents.On("GetByID", mock.Anything, intentID).
		Return(&model.PaymentIntent{
			ID:       intentID,
			BuyerID:  buyerID,
			SellerID: uuid.New(),
			Method:   model.PaymentMethodNWC,
			Status:   model.IntentStatusPaid,
			PaidAt:   &paidAt,
		}, nil)

	intent, err := service.CheckStatus(context.Background(), buyerID, intentID)

	assert.NoError(t, err)
	assert.Equal(t, model.IntentStatusPaid, intent.Status)
	m.resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	m.intents.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_CheckStatus_LazyExpiry(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	intentID := uuid.New()
	buyerID := uuid.New()
	expired := time.Now().Add(-time.Minute)

	m.intents.On("GetByID", mock.Anything, intentID).
		Return(&model.PaymentIntent{
			ID:        intentID,
			BuyerID:   buyerID,
			SellerID:  uuid.New(),
			Method:    model.PaymentMethodLightningAddress,
			Status:    model.IntentStatusInvoiceReady,
			ExpiresAt: &expired,
		}, nil)
	m.intents.On("MarkExpired", mock.Anything, intentID).Return(true, nil)

	intent, err := service.CheckStatus(context.Background(), buyerID, intentID)

	assert.NoError(t, err)
	assert.Equal(t, model.IntentStatusExpired, intent.Status)
}

func TestPaymentService_CheckStatus_ExpiryRaceReportsStoredState(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	intentID := uuid.New()
	buyerID := uuid.New()
	sellerID := uuid.New()
	expired := time.Now().Add(-time.Minute)
	paidAt := time.Now()

	pending := &model.PaymentIntent{
		ID:        intentID,
		BuyerID:   buyerID,
		SellerID:  sellerID,
		Method:    model.PaymentMethodLightningAddress,
		Status:    model.IntentStatusInvoiceReady,
		ExpiresAt: &expired,
	}
	stored := &model.PaymentIntent{
		ID:       intentID,
		BuyerID:  buyerID,
		SellerID: sellerID,
		Method:   model.PaymentMethodLightningAddress,
		Status:   model.IntentStatusPaid,
		PaidAt:   &paidAt,
	}

	m.intents.On("GetByID", mock.Anything, intentID).Return(pending, nil).Once()
	m.intents.On("MarkExpired", mock.Anything, intentID).Return(false, nil)
	m.intents.On("GetByID", mock.Anything, intentID).Return(stored, nil).Once()

	intent, err := service.CheckStatus(context.Background(), buyerID, intentID)

	assert.NoError(t, err)
	assert.Equal(t, model.IntentStatusPaid, intent.Status)
}

func TestPaymentService_CheckStatus_SettlesNWCPayment(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	intentID := uuid.New()
	buyerID := uuid.New()
	sellerID := uuid.New()
	listingID := uuid.New()
	paymentHash := "abc123hash"
	settledAt := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	m.intents.On("GetByID", mock.Anything, intentID).
		Return(&model.PaymentIntent{
			ID:          intentID,
			BuyerID:     buyerID,
			SellerID:    sellerID,
			EntityType:  model.EntityTypeListing,
			EntityID:    listingID,
			AmountSats:  50000,
			Method:      model.PaymentMethodNWC,
			Status:      model.IntentStatusInvoiceReady,
			PaymentHash: &paymentHash,
			ExpiresAt:   &future,
		}, nil)

	session := new(MockWalletSession)
	session.On("LookupInvoice", mock.Anything, paymentHash).Return(&settledAt, nil)
	session.On("Close").Return()

	m.resolver.On("Resolve", mock.Anything, model.EntityTypeListing, listingID).
		Return(&provider.ResolvedWallet{Method: model.PaymentMethodNWC, NWCSecret: "nostr+walletconnect://abc"}, nil)
	m.connector.On("Open", mock.Anything, "nostr+walletconnect://abc").Return(session, nil)
	m.intents.On("MarkPaid", mock.Anything, intentID, settledAt).Return(true, nil)

	order := &model.Order{ID: uuid.New(), IntentID: intentID, Status: model.OrderStatusPendingPayment}
	m.orders.On("GetByIntentID", mock.Anything, intentID).Return(order, nil)
	m.orders.On("UpdateStatus", mock.Anything, order.ID, model.OrderStatusPaid).Return(nil)
	m.listings.On("DecrementInventory", mock.Anything, listingID).Return(true, nil)
	m.notifier.On("PaymentSettled", mock.Anything, mock.AnythingOfType("*model.PaymentIntent")).Return()

	intent, err := service.CheckStatus(context.Background(), buyerID, intentID)

	assert.NoError(t, err)
	assert.Equal(t, model.IntentStatusPaid, intent.Status)
	assert.Equal(t, settledAt, *intent.PaidAt)
	session.AssertCalled(t, "Close")
	m.notifier.AssertExpectations(t)
	m.listings.AssertExpectations(t)
}

func TestPaymentService_CheckStatus_LookupFailureLeavesIntentPending(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	intentID := uuid.New()
	buyerID := uuid.New()
	listingID := uuid.New()
	paymentHash := "abc123hash"
	future := time.Now().Add(time.Hour)

	m.intents.On("GetByID", mock.Anything, intentID).
		Return(&model.PaymentIntent{
			ID:          intentID,
			BuyerID:     buyerID,
			SellerID:    uuid.New(),
			EntityType:  model.EntityTypeListing,
			EntityID:    listingID,
			Method:      model.PaymentMethodNWC,
			Status:      model.IntentStatusInvoiceReady,
			PaymentHash: &paymentHash,
			ExpiresAt:   &future,
		}, nil)
	m.resolver.On("Resolve", mock.Anything, model.EntityTypeListing, listingID).
		Return(&provider.ResolvedWallet{Method: model.PaymentMethodNWC, NWCSecret: "nostr+walletconnect://abc"}, nil)
	m.connector.On("Open", mock.Anything, "nostr+walletconnect://abc").
		Return(nil, errors.New("relay unreachable"))

	intent, err := service.CheckStatus(context.Background(), buyerID, intentID)

	// A failed lookup means "not settled yet", never an error.
	assert.NoError(t, err)
	assert.Equal(t, model.IntentStatusInvoiceReady, intent.Status)
	m.intents.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_CheckStatus_SettleRaceReportsStoredState(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	intentID := uuid.New()
	buyerID := uuid.New()
	sellerID := uuid.New()
	listingID := uuid.New()
	paymentHash := "abc123hash"
	settledAt := time.Now()
	future := time.Now().Add(time.Hour)

	pending := &model.PaymentIntent{
		ID:          intentID,
		BuyerID:     buyerID,
		SellerID:    sellerID,
		EntityType:  model.EntityTypeListing,
		EntityID:    listingID,
		Method:      model.PaymentMethodNWC,
		Status:      model.IntentStatusInvoiceReady,
		PaymentHash: &paymentHash,
		ExpiresAt:   &future,
	}
	stored := &model.PaymentIntent{
		ID:       intentID,
		BuyerID:  buyerID,
		SellerID: sellerID,
		Method:   model.PaymentMethodNWC,
		Status:   model.IntentStatusExpired,
	}

	session := new(MockWalletSession)
	session.On("LookupInvoice", mock.Anything, paymentHash).Return(&settledAt, nil)
	session.On("Close").Return()

	m.intents.On("GetByID", mock.Anything, intentID).Return(pending, nil).Once()
	m.resolver.On("Resolve", mock.Anything, model.EntityTypeListing, listingID).
		Return(&provider.ResolvedWallet{Method: model.PaymentMethodNWC, NWCSecret: "nostr+walletconnect://abc"}, nil)
	m.connector.On("Open", mock.Anything, "nostr+walletconnect://abc").Return(session, nil)
	m.intents.On("MarkPaid", mock.Anything, intentID, settledAt).Return(false, nil)
	m.intents.On("GetByID", mock.Anything, intentID).Return(stored, nil).Once()

	intent, err := service.CheckStatus(context.Background(), buyerID, intentID)

	assert.NoError(t, err)
	assert.Equal(t, model.IntentStatusExpired, intent.Status)
	// The loser of the settle race must not run side effects.
	m.listings.AssertNotCalled(t, "DecrementInventory", mock.Anything, mock.Anything)
	m.notifier.AssertNotCalled(t, "PaymentSettled", mock.Anything, mock.Anything)
}

func TestPaymentService_CheckStatus_InventoryFailureDoesNotUnsettle(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	intentID := uuid.New()
	buyerID := uuid.New()
	listingID := uuid.New()
	paymentHash := "abc123hash"
	settledAt := time.Now()
	future := time.Now().Add(time.Hour)

	m.intents.On("GetByID", mock.Anything, intentID).
		Return(&model.PaymentIntent{
			ID:          intentID,
			BuyerID:     buyerID,
			SellerID:    uuid.New(),
			EntityType:  model.EntityTypeListing,
			EntityID:    listingID,
			Method:      model.PaymentMethodNWC,
			Status:      model.IntentStatusInvoiceReady,
			PaymentHash: &paymentHash,
			ExpiresAt:   &future,
		}, nil)

	session := new(MockWalletSession)
	session.On("LookupInvoice", mock.Anything, paymentHash).Return(&settledAt, nil)
	session.On("Close").Return()

	m.resolver.On("Resolve", mock.Anything, model.EntityTypeListing, listingID).
		Return(&provider.ResolvedWallet{Method: model.PaymentMethodNWC, NWCSecret: "nostr+walletconnect://abc"}, nil)
	m.connector.On("Open", mock.Anything, "nostr+walletconnect://abc").Return(session, nil)
	m.intents.On("MarkPaid", mock.Anything, intentID, settledAt).Return(true, nil)

	order := &model.Order{ID: uuid.New(), IntentID: intentID}
	m.orders.On("GetByIntentID", mock.Anything, intentID).Return(order, nil)
	m.orders.On("UpdateStatus", mock.Anything, order.ID, model.OrderStatusPaid).Return(nil)
	m.listings.On("DecrementInventory", mock.Anything, listingID).Return(false, errors.New("db down"))
	m.notifier.On("PaymentSettled", mock.Anything, mock.AnythingOfType("*model.PaymentIntent")).Return()

	intent, err := service.CheckStatus(context.Background(), buyerID, intentID)

	assert.NoError(t, err)
	assert.Equal(t, model.IntentStatusPaid, intent.Status)
	m.notifier.AssertExpectations(t)
}

func TestPaymentService_ConfirmByBuyer(t *testing.T) {
	intentID := uuid.New()
	buyerID := uuid.New()
	sellerID := uuid.New()
	listingID := uuid.New()

	baseIntent := func(method model.PaymentMethod, status model.IntentStatus) *model.PaymentIntent {
		return &model.PaymentIntent{
			ID:         intentID,
			BuyerID:    buyerID,
			SellerID:   sellerID,
			EntityType: model.EntityTypeListing,
			EntityID:   listingID,
			Method:     method,
			Status:     status,
		}
	}

	tests := []struct {
		name           string
		callerID       uuid.UUID
		intent         *model.PaymentIntent
		mockSetup      func(*paymentServiceMocks)
		expectedStatus model.IntentStatus
		expectedError  error
		terminalError  bool
	}{
		{
			name:     "onchain confirmation succeeds",
			callerID: buyerID,
			intent:   baseIntent(model.PaymentMethodOnChain, model.IntentStatusCreated),
			mockSetup: func(m *paymentServiceMocks) {
				m.intents.On("MarkBuyerConfirmed", mock.Anything, intentID).Return(true, nil)
				order := &model.Order{ID: uuid.New(), IntentID: intentID}
				m.orders.On("GetByIntentID", mock.Anything, intentID).Return(order, nil)
				m.orders.On("UpdateStatus", mock.Anything, order.ID, model.OrderStatusPaid).Return(nil)
			},
			expectedStatus: model.IntentStatusBuyerConfirmed,
		},
		{
			name:          "seller cannot confirm",
			callerID:      sellerID,
			intent:        baseIntent(model.PaymentMethodOnChain, model.IntentStatusCreated),
			mockSetup:     func(m *paymentServiceMocks) {},
			expectedError: domainErrors.ErrNotParticipant,
		},
		{
			name:          "nwc intents cannot be manually confirmed",
			callerID:      buyerID,
			intent:        baseIntent(model.PaymentMethodNWC, model.IntentStatusInvoiceReady),
			mockSetup:     func(m *paymentServiceMocks) {},
			expectedError: domainErrors.ErrManualConfirmOnly,
		},
		{
			name:          "already paid",
			callerID:      buyerID,
			intent:        baseIntent(model.PaymentMethodLightningAddress, model.IntentStatusPaid),
			mockSetup:     func(m *paymentServiceMocks) {},
			expectedError: domainErrors.ErrAlreadyPaid,
		},
		{
			name:          "expired intent reports terminal state",
			callerID:      buyerID,
			intent:        baseIntent(model.PaymentMethodLightningAddress, model.IntentStatusExpired),
			mockSetup:     func(m *paymentServiceMocks) {},
			terminalError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newPaymentServiceWithMocks()
			m.intents.On("GetByID", mock.Anything, intentID).Return(tt.intent, nil)
			tt.mockSetup(m)

			intent, err := service.ConfirmByBuyer(context.Background(), tt.callerID, intentID)

			switch {
			case tt.terminalError:
				var terminal *domainErrors.TerminalStateError
				assert.ErrorAs(t, err, &terminal)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedStatus, intent.Status)
			}
		})
	}
}

func TestPaymentService_ConfirmByBuyer_RaceReportsStoredState(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	intentID := uuid.New()
	buyerID := uuid.New()

	pending := &model.PaymentIntent{
		ID:       intentID,
		BuyerID:  buyerID,
		SellerID: uuid.New(),
		Method:   model.PaymentMethodOnChain,
		Status:   model.IntentStatusCreated,
	}
	stored := &model.PaymentIntent{
		ID:       intentID,
		BuyerID:  buyerID,
		SellerID: pending.SellerID,
		Method:   model.PaymentMethodOnChain,
		Status:   model.IntentStatusExpired,
	}

	m.intents.On("GetByID", mock.Anything, intentID).Return(pending, nil).Once()
	m.intents.On("MarkBuyerConfirmed", mock.Anything, intentID).Return(false, nil)
	m.intents.On("GetByID", mock.Anything, intentID).Return(stored, nil).Once()

	intent, err := service.ConfirmByBuyer(context.Background(), buyerID, intentID)

	assert.NoError(t, err)
	assert.Equal(t, model.IntentStatusExpired, intent.Status)
	m.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_GetIntent_NotFound(t *testing.T) {
	service, m := newPaymentServiceWithMocks()
	intentID := uuid.New()

	m.intents.On("GetByID", mock.Anything, intentID).Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetIntent(context.Background(), uuid.New(), intentID)
	assert.ErrorIs(t, err, domainErrors.ErrIntentNotFound)
}
