package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukalink/storefront-gateway/internal/model"
)

// --- Auth ---

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	Color     string     `json:"color"`
	Size      string     `json:"size"`
}

// Quantity zero or below removes the line, so no lower bound here.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	Key       string          `json:"key"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalCount int                `json:"total_count"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

// --- Checkout ---

type CheckoutRequest struct {
	PaymentMethod       string `json:"payment_method" binding:"required"`
	PhoneNumber         string `json:"phone_number"`
	UseRegisteredNumber bool   `json:"use_registered_number"`
	BankName            string `json:"bank_name"`
	AccountNumber       string `json:"account_number"`
	AccountHolder       string `json:"account_holder"`
	CouponCode          string `json:"coupon_code"`
	Notes               string `json:"notes"`
}

// PaymentCheckResponse reports whether the confirm action should be
// enabled for the current selection.
type PaymentCheckResponse struct {
	Complete bool   `json:"complete"`
	Reason   string `json:"reason,omitempty"`
}

// --- Orders ---

type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          *uuid.UUID          `json:"user_id,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	TotalPrice      decimal.Decimal     `json:"total_price"`
	Discount        decimal.Decimal     `json:"discount"`
	FinalPrice      decimal.Decimal     `json:"final_price"`
	Status          model.OrderStatus   `json:"status"`
	PaymentMethod   model.PaymentMethod `json:"payment_method"`
	Paid            bool                `json:"paid"`
	ClientConfirmed bool                `json:"client_confirmed"`
	DeliveryDate    *time.Time          `json:"delivery_date,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// StatusChangeResponse carries non-fatal warnings alongside the new
// status; the transition succeeded even when warnings are present.
type StatusChangeResponse struct {
	Status   model.OrderStatus `json:"status"`
	Warnings []string          `json:"warnings,omitempty"`
}

// --- Coupons ---

type ValidateCouponRequest struct {
	Code  string          `json:"code" binding:"required"`
	Total decimal.Decimal `json:"total" binding:"required"`
}

type ValidateCouponResponse struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
}

// --- Reports ---

type SalesReportRequest struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}
