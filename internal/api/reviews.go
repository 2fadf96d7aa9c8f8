package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dukalink/storefront-gateway/internal/model"
)

type ReviewAPI interface {
	CreateReview(ctx context.Context, req CreateReviewRequest) (*model.Review, error)
	ListProductReviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error)
	ListReviews(ctx context.Context) ([]model.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

var _ ReviewAPI = (*Client)(nil)

type CreateReviewRequest struct {
	ProductID uuid.UUID  `json:"product_id"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
}

func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) (*model.Review, error) {
	var r model.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ListProductReviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	if err := c.do(ctx, http.MethodGet, "/products/"+productID.String()+"/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) ListReviews(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := c.do(ctx, http.MethodGet, "/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/reviews/"+id.String(), nil, nil)
}
