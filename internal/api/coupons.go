package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukalink/storefront-gateway/internal/model"
)

type CouponAPI interface {
	ListCoupons(ctx context.Context) ([]model.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error)
	CreateCoupon(ctx context.Context, req CreateCouponRequest) (*model.Coupon, error)
	DeactivateCoupon(ctx context.Context, id uuid.UUID) error
}

var _ CouponAPI = (*Client)(nil)

type CreateCouponRequest struct {
	Code        string           `json:"code"`
	Type        model.CouponType `json:"type"`
	Discount    decimal.Decimal  `json:"discount"`
	ExpiresAt   time.Time        `json:"expires_at"`
	MinPurchase *decimal.Decimal `json:"min_purchase,omitempty"`
	MaxDiscount *decimal.Decimal `json:"max_discount,omitempty"`
	UsageLimit  int              `json:"usage_limit"`
	UserID      *uuid.UUID       `json:"user_id,omitempty"`
}

func (c *Client) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	var coupons []model.Coupon
	if err := c.do(ctx, http.MethodGet, "/coupons", nil, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (c *Client) GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := c.do(ctx, http.MethodGet, "/coupons/code/"+url.PathEscape(code), nil, &coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (c *Client) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := c.do(ctx, http.MethodPost, "/coupons", req, &coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (c *Client) DeactivateCoupon(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPatch, "/coupons/"+id.String()+"/deactivate", nil, nil)
}
