package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/cart"
	"github.com/dukalink/storefront-gateway/internal/checkout"
	"github.com/dukalink/storefront-gateway/internal/model"
)

var ErrCouponNotUsable = errors.New("coupon is not currently usable")

// CheckoutService turns a session cart plus a validated payment
// selection into an order on the backend. The cart is only cleared
// once the backend accepts the order.
type CheckoutService struct {
	orders  api.OrderAPI
	coupons api.CouponAPI
	now     func() time.Time
}

func NewCheckoutService(orders api.OrderAPI, coupons api.CouponAPI) *CheckoutService {
	return &CheckoutService{orders: orders, coupons: coupons, now: time.Now}
}

// Submit validates, applies the optional coupon, creates the order,
// and clears the cart on success.
func (s *CheckoutService) Submit(ctx context.Context, c *cart.Cart, sel checkout.PaymentSelection, registeredPhone, couponCode, notes string) (*model.Order, error) {
	if couponCode != "" {
		coupon, err := s.coupons.GetCouponByCode(ctx, couponCode)
		if err != nil {
			return nil, fmt.Errorf("look up coupon: %w", err)
		}
		if !coupon.UsableAt(s.now()) {
			return nil, ErrCouponNotUsable
		}
	}

	req, err := checkout.BuildOrderRequest(c, sel, registeredPhone, couponCode, notes)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	c.Clear()
	return order, nil
}
