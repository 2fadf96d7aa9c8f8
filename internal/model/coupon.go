package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponType string

const (
	CouponPercentage CouponType = "percentage"
	CouponFixed      CouponType = "fixed"
)

type Coupon struct {
	ID          uuid.UUID        `json:"id"`
	Code        string           `json:"code"`
	Type        CouponType       `json:"type"`
	Discount    decimal.Decimal  `json:"discount"`
	ExpiresAt   time.Time        `json:"expires_at"`
	MinPurchase *decimal.Decimal `json:"min_purchase,omitempty"`
	MaxDiscount *decimal.Decimal `json:"max_discount,omitempty"`
	UsageLimit  int              `json:"usage_limit"`
	UsageCount  int              `json:"usage_count"`
	UserID      *uuid.UUID       `json:"user_id,omitempty"`
	Active      bool             `json:"active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// UsableAt reports whether the coupon can currently be applied. An
// expired or exhausted coupon is unusable regardless of the active
// flag.
func (c *Coupon) UsableAt(now time.Time) bool {
	if !now.Before(c.ExpiresAt) {
		return false
	}
	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return false
	}
	return c.Active
}

// DiscountFor computes the discount this coupon grants on a purchase
// total. Zero when the total is below the minimum purchase. Percentage
// coupons are capped by MaxDiscount when set.
func (c *Coupon) DiscountFor(total decimal.Decimal) decimal.Decimal {
	if c.MinPurchase != nil && total.LessThan(*c.MinPurchase) {
		return decimal.Zero
	}
	switch c.Type {
	case CouponPercentage:
		d := total.Mul(c.Discount).Div(decimal.NewFromInt(100))
		if c.MaxDiscount != nil && d.GreaterThan(*c.MaxDiscount) {
			d = *c.MaxDiscount
		}
		return d
	case CouponFixed:
		if c.Discount.GreaterThan(total) {
			return total
		}
		return c.Discount
	}
	return decimal.Zero
}
