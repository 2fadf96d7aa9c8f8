package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/model"
)

var ErrExpiryInPast = errors.New("expiry date must be in the future")

type CouponService struct {
	coupons api.CouponAPI
	now     func() time.Time
}

func NewCouponService(coupons api.CouponAPI) *CouponService {
	return &CouponService{coupons: coupons, now: time.Now}
}

func (s *CouponService) List(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.coupons.ListCoupons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	return coupons, nil
}

// Create normalizes the code to uppercase and rejects an expiry that
// is not strictly in the future.
func (s *CouponService) Create(ctx context.Context, req api.CreateCouponRequest) (*model.Coupon, error) {
	if !req.ExpiresAt.After(s.now()) {
		return nil, ErrExpiryInPast
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))

	coupon, err := s.coupons.CreateCoupon(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create coupon: %w", err)
	}
	return coupon, nil
}

func (s *CouponService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.coupons.DeactivateCoupon(ctx, id); err != nil {
		return fmt.Errorf("deactivate coupon: %w", err)
	}
	return nil
}

// Validate resolves a code and, when the coupon is currently usable,
// returns it with the discount it grants on the given total.
func (s *CouponService) Validate(ctx context.Context, code string, total decimal.Decimal) (*model.Coupon, decimal.Decimal, error) {
	coupon, err := s.coupons.GetCouponByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("look up coupon: %w", err)
	}
	if !coupon.UsableAt(s.now()) {
		return nil, decimal.Zero, ErrCouponNotUsable
	}
	return coupon, coupon.DiscountFor(total), nil
}
