package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// transitions is the full status machine. Delivered and cancelled are
// terminal; delivered is additionally gated on client confirmation,
// which CanTransitionTo does not check (the workflow does).
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentMpesa          PaymentMethod = "mpesa"
	PaymentAirtelMoney    PaymentMethod = "airtel_money"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentBankAccount    PaymentMethod = "bank_account"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMpesa, PaymentAirtelMoney, PaymentCashOnDelivery,
		PaymentBankAccount, PaymentBankTransfer:
		return true
	}
	return false
}

// MobileMoney reports whether the method settles through a phone number.
func (m PaymentMethod) MobileMoney() bool {
	return m == PaymentMpesa || m == PaymentAirtelMoney
}

// Bank reports whether the method requires bank account details.
func (m PaymentMethod) Bank() bool {
	return m == PaymentBankAccount || m == PaymentBankTransfer
}

// OwnerRef is the order's owning user as the backend serializes it:
// sometimes a bare id string, sometimes a populated user object.
// Decoding normalizes both shapes; use sites go through UserID.
type OwnerRef struct {
	id   uuid.UUID
	user *User
}

func OwnerID(id uuid.UUID) OwnerRef { return OwnerRef{id: id} }

func OwnerUser(u *User) OwnerRef { return OwnerRef{user: u} }

// UserID resolves the owning user's id from either shape. ok is false
// when the reference is empty or carries a zero id.
func (r OwnerRef) UserID() (uuid.UUID, bool) {
	if r.user != nil && r.user.ID != uuid.Nil {
		return r.user.ID, true
	}
	if r.id != uuid.Nil {
		return r.id, true
	}
	return uuid.Nil, false
}

// User returns the populated user object when the backend sent one.
func (r OwnerRef) User() (*User, bool) {
	return r.user, r.user != nil
}

func (r *OwnerRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s == "" {
			*r = OwnerRef{}
			return nil
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return err
		}
		*r = OwnerRef{id: id}
		return nil
	}
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return err
	}
	*r = OwnerRef{user: &u}
	return nil
}

func (r OwnerRef) MarshalJSON() ([]byte, error) {
	if r.user != nil {
		return json.Marshal(r.user)
	}
	if r.id == uuid.Nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.id.String())
}

// OrderItem is one line of an order. Name, image, color and size are
// denormalized at checkout time so the order renders without a catalog
// lookup.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Color     string          `json:"color"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID                uuid.UUID       `json:"id"`
	Owner             OwnerRef        `json:"user"`
	Items             []OrderItem     `json:"items"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	Discount          decimal.Decimal `json:"discount"`
	FinalPrice        decimal.Decimal `json:"final_price"`
	Status            OrderStatus     `json:"status"`
	PaymentMethod     PaymentMethod   `json:"payment_method"`
	Paid              bool            `json:"paid"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	DeliveryDate      *time.Time      `json:"delivery_date,omitempty"`
	ClientConfirmed   bool            `json:"client_confirmed"`
	ClientConfirmedAt *time.Time      `json:"client_confirmed_at,omitempty"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ShortRef is the human-facing order reference used in notification
// texts: the last 8 characters of the canonical id string.
func (o *Order) ShortRef() string {
	s := o.ID.String()
	return s[len(s)-8:]
}

// DistinctItems collapses line items referencing the same product to a
// single representative, preserving first-seen order.
func (o *Order) DistinctItems() []OrderItem {
	seen := make(map[uuid.UUID]bool, len(o.Items))
	var out []OrderItem
	for _, it := range o.Items {
		if seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		out = append(out, it)
	}
	return out
}
