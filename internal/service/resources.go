package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/model"
)

// NotificationService is the customer-facing notification surface.
// Creation is reserved for the order workflow.
type NotificationService struct {
	notifications api.NotificationAPI
}

func NewNotificationService(notifications api.NotificationAPI) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	ns, err := s.notifications.ListNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return ns, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.notifications.MarkNotificationRead(ctx, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

type ReviewService struct {
	reviews api.ReviewAPI
}

func NewReviewService(reviews api.ReviewAPI) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) Create(ctx context.Context, req api.CreateReviewRequest) (*model.Review, error) {
	review, err := s.reviews.CreateReview(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	reviews, err := s.reviews.ListProductReviews(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list product reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) ListAll(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviews.ListReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.reviews.DeleteReview(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

type ReportService struct {
	reports api.ReportAPI
}

func NewReportService(reports api.ReportAPI) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) Sales(ctx context.Context, from, to time.Time) (*model.SalesReport, error) {
	report, err := s.reports.SalesReport(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch sales report: %w", err)
	}
	return report, nil
}
