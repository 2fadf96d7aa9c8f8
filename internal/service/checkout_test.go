package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/cart"
	"github.com/dukalink/storefront-gateway/internal/checkout"
	"github.com/dukalink/storefront-gateway/internal/model"
)

type mockCouponAPI struct {
	coupons     map[string]*model.Coupon
	created     []api.CreateCouponRequest
	deactivated []uuid.UUID
}

func newMockCouponAPI() *mockCouponAPI {
	return &mockCouponAPI{coupons: make(map[string]*model.Coupon)}
}

func (m *mockCouponAPI) ListCoupons(_ context.Context) ([]model.Coupon, error) {
	var out []model.Coupon
	for _, c := range m.coupons {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCouponAPI) GetCouponByCode(_ context.Context, code string) (*model.Coupon, error) {
	c, ok := m.coupons[code]
	if !ok {
		return nil, &api.Error{Status: http.StatusNotFound, Message: "coupon not found"}
	}
	return c, nil
}

func (m *mockCouponAPI) CreateCoupon(_ context.Context, req api.CreateCouponRequest) (*model.Coupon, error) {
	m.created = append(m.created, req)
	coupon := &model.Coupon{
		ID:         uuid.New(),
		Code:       req.Code,
		Type:       req.Type,
		Discount:   req.Discount,
		ExpiresAt:  req.ExpiresAt,
		UsageLimit: req.UsageLimit,
		Active:     true,
	}
	m.coupons[req.Code] = coupon
	return coupon, nil
}

func (m *mockCouponAPI) DeactivateCoupon(_ context.Context, id uuid.UUID) error {
	m.deactivated = append(m.deactivated, id)
	return nil
}

func cartWithItem(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	c.AddItem(cart.Item{ProductID: uuid.New(), Name: "Tee", Price: decimal.NewFromInt(10), Size: "M"})
	return c
}

func TestCheckoutService_Submit(t *testing.T) {
	orders := newMockOrderAPI()
	svc := NewCheckoutService(orders, newMockCouponAPI())
	c := cartWithItem(t)

	sel := checkout.PaymentSelection{Method: model.PaymentMpesa, PhoneNumber: "+254700000001"}
	order, err := svc.Submit(context.Background(), c, sel, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	require.Len(t, orders.createdReqs, 1)
	assert.Equal(t, "+254700000001", orders.createdReqs[0].PaymentDetails.PhoneNumber)
	// cart only clears after the backend accepted the order
	assert.Empty(t, c.Items())
}

func TestCheckoutService_Submit_UnusableCoupon(t *testing.T) {
	orders := newMockOrderAPI()
	coupons := newMockCouponAPI()
	coupons.coupons["SAVE10"] = &model.Coupon{
		Code:       "SAVE10",
		Active:     true,
		ExpiresAt:  time.Now().Add(-time.Hour),
		UsageLimit: 10,
	}
	svc := NewCheckoutService(orders, coupons)
	c := cartWithItem(t)

	sel := checkout.PaymentSelection{Method: model.PaymentCashOnDelivery}
	_, err := svc.Submit(context.Background(), c, sel, "", "SAVE10", "")

	assert.ErrorIs(t, err, ErrCouponNotUsable)
	assert.Empty(t, orders.createdReqs)
	assert.Len(t, c.Items(), 1)
}

func TestCheckoutService_Submit_InvalidSelectionKeepsCart(t *testing.T) {
	svc := NewCheckoutService(newMockOrderAPI(), newMockCouponAPI())
	c := cartWithItem(t)

	_, err := svc.Submit(context.Background(), c, checkout.PaymentSelection{Method: model.PaymentMpesa}, "", "", "")
	assert.ErrorIs(t, err, checkout.ErrPhoneRequired)
	assert.Len(t, c.Items(), 1)
}
