package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/model"
)

var (
	ErrOrderAccessDenied = errors.New("access denied")
	ErrNotCancellable    = errors.New("only pending orders can be cancelled")
)

// CustomerOrders is the storefront-side order surface: own orders
// only, plus the receipt-confirmation action that unlocks the
// "delivered" transition on the admin side.
type CustomerOrders struct {
	orders api.OrderAPI
}

func NewCustomerOrders(orders api.OrderAPI) *CustomerOrders {
	return &CustomerOrders{orders: orders}
}

func (s *CustomerOrders) List(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orders.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *CustomerOrders) Get(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if ownerID, ok := order.Owner.UserID(); !ok || ownerID != userID {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

// ConfirmReceipt sets the client-confirmed flag on the backend and
// returns the refetched order.
func (s *CustomerOrders) ConfirmReceipt(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	if _, err := s.Get(ctx, orderID, userID); err != nil {
		return nil, err
	}
	order, err := s.orders.ConfirmReceipt(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("confirm receipt: %w", err)
	}
	return order, nil
}

// Cancel lets the owner cancel an order that is still pending.
func (s *CustomerOrders) Cancel(ctx context.Context, orderID, userID uuid.UUID) error {
	order, err := s.Get(ctx, orderID, userID)
	if err != nil {
		return err
	}
	if order.Status != model.OrderStatusPending {
		return ErrNotCancellable
	}
	if err := s.orders.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	return nil
}
