package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/model"
)

func TestCouponService_Create_RejectsPastExpiry(t *testing.T) {
	coupons := newMockCouponAPI()
	svc := NewCouponService(coupons)

	_, err := svc.Create(context.Background(), api.CreateCouponRequest{
		Code:      "OLD",
		Type:      model.CouponFixed,
		Discount:  decimal.NewFromInt(5),
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	assert.ErrorIs(t, err, ErrExpiryInPast)
	assert.Empty(t, coupons.created)
}

func TestCouponService_Create_UppercasesCode(t *testing.T) {
	coupons := newMockCouponAPI()
	svc := NewCouponService(coupons)

	coupon, err := svc.Create(context.Background(), api.CreateCouponRequest{
		Code:      " save10 ",
		Type:      model.CouponPercentage,
		Discount:  decimal.NewFromInt(10),
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
}

func TestCouponService_Validate(t *testing.T) {
	coupons := newMockCouponAPI()
	coupons.coupons["SAVE10"] = &model.Coupon{
		Code:       "SAVE10",
		Type:       model.CouponPercentage,
		Discount:   decimal.NewFromInt(10),
		Active:     true,
		ExpiresAt:  time.Now().Add(time.Hour),
		UsageLimit: 100,
	}
	svc := NewCouponService(coupons)

	coupon, discount, err := svc.Validate(context.Background(), "save10", decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)
	assert.True(t, discount.Equal(decimal.NewFromInt(20)), "got %s", discount)
}

func TestCouponService_Validate_ExhaustedCoupon(t *testing.T) {
	coupons := newMockCouponAPI()
	coupons.coupons["FULL"] = &model.Coupon{
		Code:       "FULL",
		Type:       model.CouponFixed,
		Discount:   decimal.NewFromInt(5),
		Active:     true,
		ExpiresAt:  time.Now().Add(time.Hour),
		UsageLimit: 3,
		UsageCount: 3,
	}
	svc := NewCouponService(coupons)

	_, _, err := svc.Validate(context.Background(), "FULL", decimal.NewFromInt(50))
	assert.ErrorIs(t, err, ErrCouponNotUsable)
}
