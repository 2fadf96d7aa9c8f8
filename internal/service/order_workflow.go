package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/model"
)

var (
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrReceiptNotConfirmed  = errors.New("client must confirm receipt first")
	ErrOwnerUnresolved      = errors.New("cannot resolve the order's owning user")
	ErrStatusUpdateInFlight = errors.New("a status update for this order is already in progress")
)

// statusNotice is the fixed per-status notification template.
type statusNotice struct {
	title   string
	typ     model.NotificationType
	message func(shortRef string) string
}

var statusNotices = map[model.OrderStatus]statusNotice{
	model.OrderStatusConfirmed: {
		title: "Order Confirmed",
		typ:   model.NotificationOrderUpdate,
		message: func(ref string) string {
			return fmt.Sprintf("Your order #%s was confirmed and is being prepared.", ref)
		},
	},
	model.OrderStatusShipped: {
		title: "Order Shipped",
		typ:   model.NotificationOrderUpdate,
		message: func(ref string) string {
			return fmt.Sprintf("Your order #%s has shipped. Please confirm receipt on arrival.", ref)
		},
	},
	model.OrderStatusDelivered: {
		title: "Order Delivered",
		typ:   model.NotificationDelivered,
		message: func(ref string) string {
			return fmt.Sprintf("Your order #%s was delivered successfully! Thanks for your purchase.", ref)
		},
	},
	model.OrderStatusCancelled: {
		title: "Order Cancelled",
		typ:   model.NotificationOrderUpdate,
		message: func(ref string) string {
			return fmt.Sprintf("Your order #%s was cancelled. Contact support with questions.", ref)
		},
	},
}

// OrderWorkflow drives the back-office order lifecycle: it validates
// transitions against the status machine, gates "delivered" on the
// client-confirmed flag, fans out notifications, and keeps the cached
// order list and current-order detail fresh. The caches are only ever
// replaced from a successful refetch, never patched from a mutation
// response.
type OrderWorkflow struct {
	orders        api.OrderAPI
	notifications api.NotificationAPI
	log           *slog.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]bool
	list     []model.Order
	current  *model.Order
}

func NewOrderWorkflow(orders api.OrderAPI, notifications api.NotificationAPI, log *slog.Logger) *OrderWorkflow {
	return &OrderWorkflow{
		orders:        orders,
		notifications: notifications,
		log:           log,
		inFlight:      make(map[uuid.UUID]bool),
	}
}

// StatusChangeResult reports a completed transition. Warnings carry
// non-fatal follow-up failures (notification creation, cache refresh);
// the status change itself is authoritative once this is returned.
type StatusChangeResult struct {
	Status   model.OrderStatus
	Warnings []string
}

// ChangeStatus runs the full transition contract for one order. All
// backend calls execute strictly sequentially; a second invocation for
// the same order while one is running is rejected.
func (w *OrderWorkflow) ChangeStatus(ctx context.Context, orderID uuid.UUID, target model.OrderStatus) (*StatusChangeResult, error) {
	if !target.Valid() {
		return nil, ErrInvalidStatus
	}

	if !w.begin(orderID) {
		return nil, ErrStatusUpdateInFlight
	}
	defer w.end(orderID)

	order, err := w.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, target)
	}
	if target == model.OrderStatusDelivered && !order.ClientConfirmed {
		return nil, ErrReceiptNotConfirmed
	}

	ownerID, ok := w.resolveOwner(order)
	if !ok {
		return nil, ErrOwnerUnresolved
	}

	if err := w.orders.UpdateOrderStatus(ctx, orderID, target); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	result := &StatusChangeResult{Status: target}
	w.notify(ctx, order, target, ownerID, result)
	w.refresh(ctx, orderID, result)
	return result, nil
}

func (w *OrderWorkflow) begin(orderID uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight[orderID] {
		return false
	}
	w.inFlight[orderID] = true
	return true
}

func (w *OrderWorkflow) end(orderID uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, orderID)
}

// resolveOwner resolves the owning user's id from, in order: the
// freshly fetched order, the cached current order, and the in-memory
// order list. List projections may carry only a partial owner
// reference, hence the chain.
func (w *OrderWorkflow) resolveOwner(order *model.Order) (uuid.UUID, bool) {
	if id, ok := order.Owner.UserID(); ok {
		return id, true
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current != nil && w.current.ID == order.ID {
		if id, ok := w.current.Owner.UserID(); ok {
			return id, true
		}
	}
	for i := range w.list {
		if w.list[i].ID == order.ID {
			if id, ok := w.list[i].Owner.UserID(); ok {
				return id, true
			}
		}
	}
	return uuid.Nil, false
}

// notify creates the per-status notification and, on delivered, one
// review request per distinct product. Failures here never roll back
// the status change; they surface as warnings.
func (w *OrderWorkflow) notify(ctx context.Context, order *model.Order, target model.OrderStatus, ownerID uuid.UUID, result *StatusChangeResult) {
	notice, ok := statusNotices[target]
	if !ok {
		return
	}

	orderID := order.ID
	_, err := w.notifications.CreateNotification(ctx, api.CreateNotificationRequest{
		Title:   notice.title,
		Message: notice.message(order.ShortRef()),
		Type:    notice.typ,
		UserID:  ownerID,
		OrderID: &orderID,
	})
	if err != nil {
		w.log.Warn("status notification failed", "order_id", orderID, "error", err)
		result.Warnings = append(result.Warnings, "status updated, but notification failed")
	}

	if target != model.OrderStatusDelivered {
		return
	}
	for _, item := range order.DistinctItems() {
		_, err := w.notifications.CreateNotification(ctx, api.CreateNotificationRequest{
			Title:   "How was your purchase?",
			Message: fmt.Sprintf("Tell other shoppers what you think of %s from order #%s.", item.Name, order.ShortRef()),
			Type:    model.NotificationReviewRequest,
			UserID:  ownerID,
			OrderID: &orderID,
		})
		if err != nil {
			w.log.Warn("review request notification failed",
				"order_id", orderID, "product_id", item.ProductID, "error", err)
			result.Warnings = append(result.Warnings, "status updated, but notification failed")
		}
	}
}

// refresh refetches the order list and, when a detail view for this
// order is open, the detail too. The mutation already succeeded, so
// refetch failures are warnings: the stale cache stays until the next
// successful fetch.
func (w *OrderWorkflow) refresh(ctx context.Context, orderID uuid.UUID, result *StatusChangeResult) {
	list, err := w.orders.ListOrders(ctx)
	if err != nil {
		w.log.Warn("order list refresh failed", "error", err)
		result.Warnings = append(result.Warnings, "order list refresh failed")
	} else {
		w.setList(list)
	}

	w.mu.Lock()
	open := w.current != nil && w.current.ID == orderID
	w.mu.Unlock()
	if !open {
		return
	}

	detail, err := w.orders.GetOrder(ctx, orderID)
	if err != nil {
		w.log.Warn("order detail refresh failed", "order_id", orderID, "error", err)
		result.Warnings = append(result.Warnings, "order detail refresh failed")
		return
	}
	w.setCurrent(detail)
}

// List returns the cached order list, refetching when empty or when
// force is set.
func (w *OrderWorkflow) List(ctx context.Context, force bool) ([]model.Order, error) {
	w.mu.Lock()
	cached := w.list
	w.mu.Unlock()
	if len(cached) > 0 && !force {
		return cached, nil
	}

	list, err := w.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	w.setList(list)
	return list, nil
}

// Open fetches one order's detail and marks it as the current order.
func (w *OrderWorkflow) Open(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	order, err := w.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("fetch order: %w", err)
	}
	w.setCurrent(order)
	return order, nil
}

// Close drops the current-order detail cache.
func (w *OrderWorkflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = nil
}

// Delete removes an order outright. Destructive escape hatch; the
// normal lifecycle never deletes.
func (w *OrderWorkflow) Delete(ctx context.Context, orderID uuid.UUID) error {
	if err := w.orders.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	w.mu.Lock()
	if w.current != nil && w.current.ID == orderID {
		w.current = nil
	}
	w.mu.Unlock()

	list, err := w.orders.ListOrders(ctx)
	if err != nil {
		w.log.Warn("order list refresh failed", "error", err)
		return nil
	}
	w.setList(list)
	return nil
}

func (w *OrderWorkflow) setList(list []model.Order) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.list = list
}

func (w *OrderWorkflow) setCurrent(order *model.Order) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = order
}
