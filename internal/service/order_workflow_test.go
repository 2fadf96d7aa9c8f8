package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/model"
)

type statusUpdate struct {
	orderID uuid.UUID
	status  model.OrderStatus
}

type mockOrderAPI struct {
	orders      map[uuid.UUID]*model.Order
	list        []model.Order
	updates     []statusUpdate
	updateErr   error
	listErr     error
	deleted     []uuid.UUID
	createdReqs []api.CreateOrderRequest
	getCalls    int
}

func newMockOrderAPI() *mockOrderAPI {
	return &mockOrderAPI{orders: make(map[uuid.UUID]*model.Order)}
}

func (m *mockOrderAPI) GetOrder(_ context.Context, id uuid.UUID) (*model.Order, error) {
	m.getCalls++
	order, ok := m.orders[id]
	if !ok {
		return nil, &api.Error{Status: http.StatusNotFound, Message: "order not found"}
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderAPI) ListOrders(_ context.Context) ([]model.Order, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *mockOrderAPI) ListUserOrders(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, o := range m.list {
		if id, ok := o.Owner.UserID(); ok && id == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderAPI) CreateOrder(_ context.Context, req api.CreateOrderRequest) (*model.Order, error) {
	m.createdReqs = append(m.createdReqs, req)
	return &model.Order{ID: uuid.New(), Status: model.OrderStatusPending}, nil
}

func (m *mockOrderAPI) UpdateOrderStatus(_ context.Context, id uuid.UUID, status model.OrderStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = append(m.updates, statusUpdate{orderID: id, status: status})
	if o, ok := m.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (m *mockOrderAPI) ConfirmReceipt(_ context.Context, id uuid.UUID) (*model.Order, error) {
	if o, ok := m.orders[id]; ok {
		o.ClientConfirmed = true
		copied := *o
		return &copied, nil
	}
	return nil, &api.Error{Status: http.StatusNotFound, Message: "order not found"}
}

func (m *mockOrderAPI) DeleteOrder(_ context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	delete(m.orders, id)
	return nil
}

type mockNotificationAPI struct {
	created   []api.CreateNotificationRequest
	createErr error
}

func (m *mockNotificationAPI) CreateNotification(_ context.Context, req api.CreateNotificationRequest) (*model.Notification, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, req)
	return &model.Notification{ID: uuid.New()}, nil
}

func (m *mockNotificationAPI) ListNotifications(_ context.Context, _ uuid.UUID) ([]model.Notification, error) {
	return nil, nil
}

func (m *mockNotificationAPI) MarkNotificationRead(_ context.Context, _ uuid.UUID) error {
	return nil
}

// blockingOrderAPI parks the first UpdateOrderStatus call until
// released, so a test can hold one status change mid-flight while
// issuing another. Later calls pass straight through.
type blockingOrderAPI struct {
	*mockOrderAPI
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (m *blockingOrderAPI) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	m.once.Do(func() {
		close(m.entered)
		<-m.release
	})
	return m.mockOrderAPI.UpdateOrderStatus(ctx, id, status)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOrderWorkflow_DeliveredRequiresClientConfirmation(t *testing.T) {
	orders := newMockOrderAPI()
	notifications := &mockNotificationAPI{}
	ownerID := uuid.New()
	orderID := uuid.New()
	orders.orders[orderID] = &model.Order{
		ID:              orderID,
		Owner:           model.OwnerID(ownerID),
		Status:          model.OrderStatusShipped,
		ClientConfirmed: false,
	}

	w := NewOrderWorkflow(orders, notifications, testLogger())
	_, err := w.ChangeStatus(context.Background(), orderID, model.OrderStatusDelivered)

	assert.ErrorIs(t, err, ErrReceiptNotConfirmed)
	assert.Empty(t, orders.updates)
	assert.Empty(t, notifications.created)
	assert.Equal(t, model.OrderStatusShipped, orders.orders[orderID].Status)
}

func TestOrderWorkflow_DeliveredFansOutPerDistinctProduct(t *testing.T) {
	orders := newMockOrderAPI()
	notifications := &mockNotificationAPI{}
	ownerID := uuid.New()
	orderID := uuid.New()
	productA, productB := uuid.New(), uuid.New()
	orders.orders[orderID] = &model.Order{
		ID:              orderID,
		Owner:           model.OwnerID(ownerID),
		Status:          model.OrderStatusShipped,
		ClientConfirmed: true,
		Items: []model.OrderItem{
			{ProductID: productA, Name: "Tee", Size: "M"},
			{ProductID: productA, Name: "Tee", Size: "L"},
			{ProductID: productB, Name: "Hoodie"},
		},
	}

	w := NewOrderWorkflow(orders, notifications, testLogger())
	result, err := w.ChangeStatus(context.Background(), orderID, model.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, model.OrderStatusDelivered, result.Status)

	require.Len(t, orders.updates, 1)
	assert.Equal(t, model.OrderStatusDelivered, orders.updates[0].status)

	// one delivery notice plus one review request per distinct product
	require.Len(t, notifications.created, 3)
	assert.Equal(t, model.NotificationDelivered, notifications.created[0].Type)
	assert.Equal(t, "Order Delivered", notifications.created[0].Title)
	assert.Equal(t, model.NotificationReviewRequest, notifications.created[1].Type)
	assert.Equal(t, model.NotificationReviewRequest, notifications.created[2].Type)
	for _, n := range notifications.created {
		assert.Equal(t, ownerID, n.UserID)
		require.NotNil(t, n.OrderID)
		assert.Equal(t, orderID, *n.OrderID)
	}
}

func TestOrderWorkflow_ConfirmedNotificationTemplate(t *testing.T) {
	orders := newMockOrderAPI()
	notifications := &mockNotificationAPI{}
	ownerID := uuid.New()
	orderID := uuid.New()
	order := &model.Order{ID: orderID, Owner: model.OwnerID(ownerID), Status: model.OrderStatusPending}
	orders.orders[orderID] = order

	w := NewOrderWorkflow(orders, notifications, testLogger())
	_, err := w.ChangeStatus(context.Background(), orderID, model.OrderStatusConfirmed)
	require.NoError(t, err)

	require.Len(t, notifications.created, 1)
	assert.Equal(t, "Order Confirmed", notifications.created[0].Title)
	assert.Contains(t, notifications.created[0].Message, "#"+order.ShortRef())
	assert.Contains(t, notifications.created[0].Message, "was confirmed and is being prepared")
}

func TestOrderWorkflow_OwnerUnresolvedBlocksUpdate(t *testing.T) {
	orders := newMockOrderAPI()
	notifications := &mockNotificationAPI{}
	orderID := uuid.New()
	orders.orders[orderID] = &model.Order{ID: orderID, Status: model.OrderStatusPending}

	w := NewOrderWorkflow(orders, notifications, testLogger())
	_, err := w.ChangeStatus(context.Background(), orderID, model.OrderStatusConfirmed)

	assert.ErrorIs(t, err, ErrOwnerUnresolved)
	assert.Empty(t, orders.updates)
	assert.Empty(t, notifications.created)
}

func TestOrderWorkflow_OwnerResolvedFromListCache(t *testing.T) {
	orders := newMockOrderAPI()
	notifications := &mockNotificationAPI{}
	ownerID := uuid.New()
	orderID := uuid.New()
	// the detail fetch carries no owner, the list projection does
	orders.orders[orderID] = &model.Order{ID: orderID, Status: model.OrderStatusPending}
	orders.list = []model.Order{{ID: orderID, Owner: model.OwnerID(ownerID), Status: model.OrderStatusPending}}

	w := NewOrderWorkflow(orders, notifications, testLogger())
	_, err := w.List(context.Background(), true)
	require.NoError(t, err)

	_, err = w.ChangeStatus(context.Background(), orderID, model.OrderStatusConfirmed)
	require.NoError(t, err)

	require.Len(t, orders.updates, 1)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, ownerID, notifications.created[0].UserID)
}

func TestOrderWorkflow_InvalidTransition(t *testing.T) {
	orders := newMockOrderAPI()
	orderID := uuid.New()
	orders.orders[orderID] = &model.Order{ID: orderID, Owner: model.OwnerID(uuid.New()), Status: model.OrderStatusPending}

	w := NewOrderWorkflow(orders, &mockNotificationAPI{}, testLogger())
	_, err := w.ChangeStatus(context.Background(), orderID, model.OrderStatusDelivered)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, orders.updates)
}

func TestOrderWorkflow_UnknownStatusRejected(t *testing.T) {
	w := NewOrderWorkflow(newMockOrderAPI(), &mockNotificationAPI{}, testLogger())
	_, err := w.ChangeStatus(context.Background(), uuid.New(), model.OrderStatus("processing"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderWorkflow_NotificationFailureIsWarning(t *testing.T) {
	orders := newMockOrderAPI()
	notifications := &mockNotificationAPI{createErr: &api.Error{Status: http.StatusBadGateway}}
	orderID := uuid.New()
	orders.orders[orderID] = &model.Order{ID: orderID, Owner: model.OwnerID(uuid.New()), Status: model.OrderStatusPending}

	w := NewOrderWorkflow(orders, notifications, testLogger())
	result, err := w.ChangeStatus(context.Background(), orderID, model.OrderStatusConfirmed)

	require.NoError(t, err)
	require.Len(t, orders.updates, 1)
	assert.Contains(t, result.Warnings, "status updated, but notification failed")
}

func TestOrderWorkflow_ListRefreshedAfterChange(t *testing.T) {
	orders := newMockOrderAPI()
	ownerID := uuid.New()
	orderID := uuid.New()
	orders.orders[orderID] = &model.Order{ID: orderID, Owner: model.OwnerID(ownerID), Status: model.OrderStatusPending}
	orders.list = []model.Order{{ID: orderID, Owner: model.OwnerID(ownerID), Status: model.OrderStatusConfirmed}}

	w := NewOrderWorkflow(orders, &mockNotificationAPI{}, testLogger())
	_, err := w.ChangeStatus(context.Background(), orderID, model.OrderStatusConfirmed)
	require.NoError(t, err)

	cached, err := w.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, model.OrderStatusConfirmed, cached[0].Status)
}

func TestOrderWorkflow_RejectsConcurrentChangeForSameOrder(t *testing.T) {
	inner := newMockOrderAPI()
	orderID := uuid.New()
	inner.orders[orderID] = &model.Order{ID: orderID, Owner: model.OwnerID(uuid.New()), Status: model.OrderStatusPending}
	orders := &blockingOrderAPI{
		mockOrderAPI: inner,
		entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}

	w := NewOrderWorkflow(orders, &mockNotificationAPI{}, testLogger())

	done := make(chan error, 1)
	go func() {
		_, err := w.ChangeStatus(context.Background(), orderID, model.OrderStatusConfirmed)
		done <- err
	}()

	// wait until the first change holds the guard, then try again
	<-orders.entered
	_, err := w.ChangeStatus(context.Background(), orderID, model.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrStatusUpdateInFlight)

	close(orders.release)
	require.NoError(t, <-done)
	assert.Len(t, inner.updates, 1)

	// guard released: the same order can transition again afterwards
	_, err = w.ChangeStatus(context.Background(), orderID, model.OrderStatusShipped)
	require.NoError(t, err)
}

func TestOrderWorkflow_OpenDetailRefreshedAfterChange(t *testing.T) {
	orders := newMockOrderAPI()
	orderID := uuid.New()
	orders.orders[orderID] = &model.Order{ID: orderID, Owner: model.OwnerID(uuid.New()), Status: model.OrderStatusPending}

	w := NewOrderWorkflow(orders, &mockNotificationAPI{}, testLogger())
	opened, err := w.Open(context.Background(), orderID)
	require.NoError(t, err)
	require.Equal(t, 1, orders.getCalls)
	assert.Equal(t, model.OrderStatusPending, opened.Status)

	// one fetch to validate the transition, one to refresh the open detail
	_, err = w.ChangeStatus(context.Background(), orderID, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 3, orders.getCalls)

	// with the detail closed the change fetches exactly once
	w.Close()
	_, err = w.ChangeStatus(context.Background(), orderID, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, 4, orders.getCalls)
}

func TestOrderWorkflow_UpdateFailureLeavesCachesAlone(t *testing.T) {
	orders := newMockOrderAPI()
	orderID := uuid.New()
	orders.orders[orderID] = &model.Order{ID: orderID, Owner: model.OwnerID(uuid.New()), Status: model.OrderStatusPending}
	orders.updateErr = &api.Error{Status: http.StatusInternalServerError, Message: "boom"}

	w := NewOrderWorkflow(orders, &mockNotificationAPI{}, testLogger())
	_, err := w.ChangeStatus(context.Background(), orderID, model.OrderStatusConfirmed)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
