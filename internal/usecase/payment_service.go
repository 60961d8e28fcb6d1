package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	domainErrors "github.com/openagora/settlement/internal/domain/errors"
	"github.com/openagora/settlement/internal/domain/model"
	"github.com/openagora/settlement/internal/domain/provider"
	"github.com/openagora/settlement/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentService owns the payment intent state machine. All cross-request
// state lives in the persisted records; every operation here is synchronous
// and safe to call repeatedly.
type PaymentService struct {
	intentRepo       repository.PaymentIntentRepository
	orderRepo        repository.OrderRepository
	contributionRepo repository.ContributionRepository
	listingRepo      repository.ListingRepository
	campaignRepo     repository.CampaignRepository
	resolver         WalletResolver
	invoices         provider.InvoiceGenerator
	connector        provider.WalletConnector
	notifier         provider.Notifier
	logger           *zap.Logger
}

func NewPaymentService(
	intentRepo repository.PaymentIntentRepository,
	orderRepo repository.OrderRepository,
	contributionRepo repository.ContributionRepository,
	listingRepo repository.ListingRepository,
	campaignRepo repository.CampaignRepository,
	resolver WalletResolver,
	invoices provider.InvoiceGenerator,
	connector provider.WalletConnector,
	notifier provider.Notifier,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		intentRepo:       intentRepo,
		orderRepo:        orderRepo,
		contributionRepo: contributionRepo,
		listingRepo:      listingRepo,
		campaignRepo:     campaignRepo,
		resolver:         resolver,
		invoices:         invoices,
		connector:        connector,
		notifier:         notifier,
		logger:           logger,
	}
}

type InitiatePaymentInput struct {
	EntityType model.EntityType
	EntityID   uuid.UUID

	// AmountSats is mandatory for campaigns and ignored for listings, whose
	// price is read authoritatively from the listing itself.
	AmountSats int64

	// Contribution extras.
	Message   *string
	Anonymous bool

	// Order extras.
	ShippingAddressID *uuid.UUID
	BuyerNote         string
}

type InitiatePaymentResult struct {
	Intent           *model.PaymentIntent
	Order            *model.Order
	Contribution     *model.Contribution
	QRContent        string
	ExpiresInSeconds *int64
}

func (s *PaymentService) InitiatePayment(ctx context.Context, buyerID uuid.UUID, in InitiatePaymentInput) (*InitiatePaymentResult, error) {
	sellerID, err := s.resolver.OwnerUserID(ctx, in.EntityType, in.EntityID)
	if err != nil {
		return nil, err
	}

	// Self-payment is rejected before any wallet work is attempted.
	if sellerID == buyerID {
		return nil, domainErrors.ErrSelfPayment
	}

	wallet, err := s.resolver.Resolve(ctx, in.EntityType, in.EntityID)
	if err != nil {
		return nil, err
	}

	amountSats, title, err := s.resolveTerms(ctx, in)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoices.Generate(ctx, wallet, amountSats, title)
	if err != nil {
		// No partial intent is persisted on generation failure.
		return nil, err
	}

	intent := &model.PaymentIntent{
		ID:          uuid.New(),
		BuyerID:     buyerID,
		SellerID:    sellerID,
		EntityType:  in.EntityType,
		EntityID:    in.EntityID,
		AmountSats:  amountSats,
		Method:      wallet.Method,
		Description: title,
		Status:      model.IntentStatusCreated,
		ExpiresAt:   invoice.ExpiresAt,
	}
	if invoice.PaymentRequest != "" {
		intent.PaymentRequest = &invoice.PaymentRequest
		intent.Status = model.IntentStatusInvoiceReady
	}
	if invoice.SettlementID != "" {
		intent.PaymentHash = &invoice.SettlementID
	}
	if invoice.OnchainAddress != "" {
		intent.OnchainAddress = &invoice.OnchainAddress
	}

	if err := s.intentRepo.Create(ctx, intent); err != nil {
		s.logger.Error("failed to persist payment intent",
			zap.String("buyer_id", buyerID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	result := &InitiatePaymentResult{
		Intent:    intent,
		QRContent: invoice.QRContent,
	}
	if intent.ExpiresAt != nil {
		secs := int64(time.Until(*intent.ExpiresAt).Seconds())
		result.ExpiresInSeconds = &secs
	}

	switch in.EntityType {
	case model.EntityTypeListing:
		order := &model.Order{
			ID:                uuid.New(),
			IntentID:          intent.ID,
			ListingID:         in.EntityID,
			BuyerID:           buyerID,
			SellerID:          sellerID,
			TitleSnapshot:     title,
			ShippingAddressID: in.ShippingAddressID,
			BuyerNote:         in.BuyerNote,
			Status:            model.OrderStatusPendingPayment,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		result.Order = order
	case model.EntityTypeCampaign:
		contribution := &model.Contribution{
			ID:            uuid.New(),
			IntentID:      intent.ID,
			CampaignID:    in.EntityID,
			ContributorID: buyerID,
			AmountSats:    amountSats,
			Message:       in.Message,
			Anonymous:     in.Anonymous,
		}
		if err := s.contributionRepo.Create(ctx, contribution); err != nil {
			return nil, fmt.Errorf("failed to create contribution: %w", err)
		}
		result.Contribution = contribution
	}

	s.logger.Info("payment initiated",
		zap.String("intent_id", intent.ID.String()),
		zap.String("method", string(intent.Method)),
		zap.Int64("amount_sats", amountSats))

	return result, nil
}

// resolveTerms determines the authoritative amount and the title snapshot.
// Fixed-price listings never trust a caller-supplied amount.
func (s *PaymentService) resolveTerms(ctx context.Context, in InitiatePaymentInput) (int64, string, error) {
	switch in.EntityType {
	case model.EntityTypeListing:
		listing, err := s.listingRepo.GetByID(ctx, in.EntityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, "", domainErrors.ErrSellerNotFound
			}
			return 0, "", fmt.Errorf("failed to load listing: %w", err)
		}
		if !listing.IsActive || listing.Inventory < 1 {
			return 0, "", domainErrors.ErrEntityUnavailable
		}
		return listing.PriceSats, listing.Title, nil
	case model.EntityTypeCampaign:
		campaign, err := s.campaignRepo.GetByID(ctx, in.EntityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, "", domainErrors.ErrSellerNotFound
			}
			return 0, "", fmt.Errorf("failed to load campaign: %w", err)
		}
		if !campaign.IsActive {
			return 0, "", domainErrors.ErrEntityUnavailable
		}
		if in.AmountSats <= 0 {
			return 0, "", domainErrors.ErrAmountRequired
		}
		return in.AmountSats, campaign.Title, nil
	default:
		return 0, "", fmt.Errorf("unknown entity type %q", in.EntityType)
	}
}

// CheckStatus re-evaluates a pending payment. It is idempotent and safe to
// call concurrently at arbitrary frequency; terminal intents return as-is.
func (s *PaymentService) CheckStatus(ctx context.Context, callerID, intentID uuid.UUID) (*model.PaymentIntent, error) {
	intent, err := s.loadIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	if callerID != intent.BuyerID && callerID != intent.SellerID {
		return nil, domainErrors.ErrNotParticipant
	}

	if intent.Status.IsTerminal() {
		return intent, nil
	}

	// Expiry is detected lazily, on the status check that first observes it.
	if intent.ExpiresAt != nil && time.Now().After(*intent.ExpiresAt) {
		ok, err := s.intentRepo.MarkExpired(ctx, intent.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to expire payment: %w", err)
		}
		if !ok {
			// A concurrent transition reached a terminal state first.
			return s.loadIntent(ctx, intentID)
		}
		intent.Status = model.IntentStatusExpired
		return intent, nil
	}

	if intent.Method.SupportsActiveLookup() && intent.PaymentHash != nil {
		if settledAt := s.lookupSettlement(ctx, intent); settledAt != nil {
			if err := s.settle(ctx, intent, *settledAt); err != nil {
				return nil, err
			}
			return intent, nil
		}
	}

	return intent, nil
}

// ConfirmByBuyer records the buyer's settlement assertion for methods without
// authoritative lookup. The system stores the claim but does not verify it;
// sellers see buyer_confirmed, never paid.
func (s *PaymentService) ConfirmByBuyer(ctx context.Context, buyerID, intentID uuid.UUID) (*model.PaymentIntent, error) {
	intent, err := s.loadIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	if buyerID != intent.BuyerID {
		return nil, domainErrors.ErrNotParticipant
	}
	if intent.Method.SupportsActiveLookup() {
		return nil, domainErrors.ErrManualConfirmOnly
	}
	if intent.Status == model.IntentStatusPaid {
		return nil, domainErrors.ErrAlreadyPaid
	}
	if intent.Status.IsTerminal() {
		return nil, domainErrors.NewTerminalStateError(intent.Status)
	}

	ok, err := s.intentRepo.MarkBuyerConfirmed(ctx, intent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record buyer confirmation: %w", err)
	}
	if !ok {
		// A concurrent transition won; reload and report the stored state.
		return s.loadIntent(ctx, intentID)
	}
	intent.Status = model.IntentStatusBuyerConfirmed

	if intent.EntityType == model.EntityTypeListing {
		if err := s.advanceOrder(ctx, intent.ID, model.OrderStatusPaid); err != nil {
			s.logger.Error("failed to advance order after buyer confirmation",
				zap.String("intent_id", intent.ID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("buyer confirmed payment",
		zap.String("intent_id", intent.ID.String()))

	return intent, nil
}

// GetIntent returns an intent to one of its participants.
func (s *PaymentService) GetIntent(ctx context.Context, callerID, intentID uuid.UUID) (*model.PaymentIntent, error) {
	intent, err := s.loadIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if callerID != intent.BuyerID && callerID != intent.SellerID {
		return nil, domainErrors.ErrNotParticipant
	}
	return intent, nil
}

// ListByBuyer returns the caller's payments as a buyer, newest first.
func (s *PaymentService) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*model.PaymentIntent, error) {
	return s.intentRepo.ListByBuyer(ctx, buyerID, limit, offset)
}

// ListBySeller returns the caller's payments as a seller, newest first.
func (s *PaymentService) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*model.PaymentIntent, error) {
	return s.intentRepo.ListBySeller(ctx, sellerID, limit, offset)
}

func (s *PaymentService) loadIntent(ctx context.Context, intentID uuid.UUID) (*model.PaymentIntent, error) {
	intent, err := s.intentRepo.GetByID(ctx, intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrIntentNotFound
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	return intent, nil
}

// lookupSettlement queries the seller's wallet for the settlement timestamp.
// Every failure here means "not settled yet": the check is polled and must be
// side-effect-free on failure, never escalating to a fatal error.
func (s *PaymentService) lookupSettlement(ctx context.Context, intent *model.PaymentIntent) *time.Time {
	wallet, err := s.resolver.Resolve(ctx, intent.EntityType, intent.EntityID)
	if err != nil {
		s.logger.Warn("settlement lookup: wallet resolution failed",
			zap.String("intent_id", intent.ID.String()),
			zap.Error(err))
		return nil
	}
	if wallet.Method != model.PaymentMethodNWC {
		// The NWC wallet resolved at initiation no longer decrypts or was
		// removed. Likely key rotation or corruption; loud log, soft result.
		s.logger.Error("settlement lookup: seller wallet no longer supports lookup",
			zap.String("intent_id", intent.ID.String()),
			zap.String("resolved_method", string(wallet.Method)))
		return nil
	}

	session, err := s.connector.Open(ctx, wallet.NWCSecret)
	if err != nil {
		s.logger.Warn("settlement lookup: failed to open wallet session",
			zap.String("intent_id", intent.ID.String()),
			zap.Error(err))
		return nil
	}
	defer session.Close()

	settledAt, err := session.LookupInvoice(ctx, *intent.PaymentHash)
	if err != nil {
		s.logger.Warn("settlement lookup failed",
			zap.String("intent_id", intent.ID.String()),
			zap.Error(err))
		return nil
	}
	return settledAt
}

// settle runs the confirmation side effects exactly once. The guarded MarkPaid
// decides the winner under concurrency; losers return with no side effects.
func (s *PaymentService) settle(ctx context.Context, intent *model.PaymentIntent, paidAt time.Time) error {
	won, err := s.intentRepo.MarkPaid(ctx, intent.ID, paidAt)
	if err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}
	if !won {
		// Another check settled (or expired) this intent first; report the
		// stored state without re-running side effects.
		stored, err := s.loadIntent(ctx, intent.ID)
		if err != nil {
			return err
		}
		*intent = *stored
		return nil
	}
	intent.Status = model.IntentStatusPaid
	intent.PaidAt = &paidAt

	switch intent.EntityType {
	case model.EntityTypeListing:
		if err := s.advanceOrder(ctx, intent.ID, model.OrderStatusPaid); err != nil {
			s.logger.Error("failed to advance order after settlement",
				zap.String("intent_id", intent.ID.String()),
				zap.Error(err))
		}

		// Inventory bookkeeping is best-effort: settlement is the source of
		// truth and is never rolled back for stock accounting.
		decremented, err := s.listingRepo.DecrementInventory(ctx, intent.EntityID)
		if err != nil {
			s.logger.Warn("inventory decrement failed",
				zap.String("listing_id", intent.EntityID.String()),
				zap.Error(err))
		} else if !decremented {
			s.logger.Warn("inventory decrement skipped: no stock remaining",
				zap.String("listing_id", intent.EntityID.String()))
		}
	case model.EntityTypeCampaign:
		if err := s.campaignRepo.AddRaised(ctx, intent.EntityID, intent.AmountSats); err != nil {
			s.logger.Warn("failed to update campaign tally",
				zap.String("campaign_id", intent.EntityID.String()),
				zap.Error(err))
		}
	}

	s.notifier.PaymentSettled(ctx, intent)

	s.logger.Info("payment settled",
		zap.String("intent_id", intent.ID.String()),
		zap.Int64("amount_sats", intent.AmountSats))

	return nil
}

func (s *PaymentService) advanceOrder(ctx context.Context, intentID uuid.UUID, status model.OrderStatus) error {
	order, err := s.orderRepo.GetByIntentID(ctx, intentID)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}
