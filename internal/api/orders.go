package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dukalink/storefront-gateway/internal/model"
)

type OrderAPI interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error
	ConfirmReceipt(ctx context.Context, id uuid.UUID) (*model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
}

var _ OrderAPI = (*Client)(nil)

// PaymentDetails carries only the fields relevant to the chosen
// method; the rest stay empty and are omitted from the payload.
type PaymentDetails struct {
	PhoneNumber   string `json:"phone_number,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	AccountHolder string `json:"account_holder,omitempty"`
}

type CreateOrderRequest struct {
	Items          []model.OrderItem   `json:"items"`
	PaymentMethod  model.PaymentMethod `json:"payment_method"`
	PaymentDetails PaymentDetails      `json:"payment_details"`
	CouponCode     string              `json:"coupon_code,omitempty"`
	Notes          string              `json:"notes,omitempty"`
}

func (c *Client) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id.String(), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	if err := c.do(ctx, http.MethodGet, "/users/"+userID.String()+"/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	body := map[string]model.OrderStatus{"status": status}
	return c.do(ctx, http.MethodPatch, "/orders/"+id.String()+"/status", body, nil)
}

func (c *Client) ConfirmReceipt(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/orders/"+id.String()+"/confirm-receipt", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+id.String(), nil, nil)
}
