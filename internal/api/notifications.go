package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dukalink/storefront-gateway/internal/model"
)

type NotificationAPI interface {
	CreateNotification(ctx context.Context, req CreateNotificationRequest) (*model.Notification, error)
	ListNotifications(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
}

var _ NotificationAPI = (*Client)(nil)

type CreateNotificationRequest struct {
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Type    model.NotificationType `json:"type"`
	UserID  uuid.UUID              `json:"user_id"`
	OrderID *uuid.UUID             `json:"order_id,omitempty"`
}

func (c *Client) CreateNotification(ctx context.Context, req CreateNotificationRequest) (*model.Notification, error) {
	var n model.Notification
	if err := c.do(ctx, http.MethodPost, "/notifications", req, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) ListNotifications(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	var ns []model.Notification
	if err := c.do(ctx, http.MethodGet, "/users/"+userID.String()+"/notifications", nil, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPatch, "/notifications/"+id.String()+"/read", nil, nil)
}
