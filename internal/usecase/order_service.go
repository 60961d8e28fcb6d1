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

// OrderService handles post-payment fulfillment. Payment state itself is
// owned by PaymentService; orders only move forward from paid here.
type OrderService struct {
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orderRepo: orderRepo, logger: logger}
}

func (s *OrderService) GetOrder(ctx context.Context, callerID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if callerID != order.BuyerID && callerID != order.SellerID {
		return nil, domainErrors.ErrNotParticipant
	}
	return order, nil
}

func (s *OrderService) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*model.Order, error) {
	return s.orderRepo.ListByBuyer(ctx, buyerID, limit, offset)
}

func (s *OrderService) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*model.Order, error) {
	return s.orderRepo.ListBySeller(ctx, sellerID, limit, offset)
}

// MarkShipped records tracking data; only the seller may ship a paid order.
func (s *OrderService) MarkShipped(ctx context.Context, sellerID, orderID uuid.UUID, trackingNumber, carrier string) (*model.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if sellerID != order.SellerID {
		return nil, domainErrors.ErrNotParticipant
	}
	if order.Status != model.OrderStatusPaid {
		return nil, domainErrors.ErrOrderStateInvalid
	}

	if err := s.orderRepo.SetShipped(ctx, orderID, trackingNumber, carrier); err != nil {
		return nil, fmt.Errorf("failed to mark order shipped: %w", err)
	}
	order.Status = model.OrderStatusShipped
	order.TrackingNumber = &trackingNumber
	order.Carrier = &carrier

	s.logger.Info("order shipped",
		zap.String("order_id", orderID.String()),
		zap.String("carrier", carrier))

	return order, nil
}

// MarkCompleted lets the buyer acknowledge receipt of a shipped order.
func (s *OrderService) MarkCompleted(ctx context.Context, buyerID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if buyerID != order.BuyerID {
		return nil, domainErrors.ErrNotParticipant
	}
	if order.Status != model.OrderStatusShipped {
		return nil, domainErrors.ErrOrderStateInvalid
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to complete order: %w", err)
	}
	order.Status = model.OrderStatusCompleted
	return order, nil
}

// Cancel voids an order that was never paid. Either participant may cancel.
func (s *OrderService) Cancel(ctx context.Context, callerID, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if callerID != order.BuyerID && callerID != order.SellerID {
		return nil, domainErrors.ErrNotParticipant
	}
	if order.Status != model.OrderStatusPendingPayment {
		return nil, domainErrors.ErrOrderStateInvalid
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	order.Status = model.OrderStatusCancelled
	return order, nil
}

// SetNotes updates the caller's own note on the order.
func (s *OrderService) SetNotes(ctx context.Context, callerID, orderID uuid.UUID, note string) (*model.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var buyerNote, sellerNote *string
	switch callerID {
	case order.BuyerID:
		buyerNote = &note
		order.BuyerNote = note
	case order.SellerID:
		sellerNote = &note
		order.SellerNote = note
	default:
		return nil, domainErrors.ErrNotParticipant
	}

	if err := s.orderRepo.SetNotes(ctx, orderID, buyerNote, sellerNote); err != nil {
		return nil, fmt.Errorf("failed to set order notes: %w", err)
	}
	return order, nil
}

func (s *OrderService) loadOrder(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}
