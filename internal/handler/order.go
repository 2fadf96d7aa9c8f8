package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukalink/storefront-gateway/internal/dto"
	"github.com/dukalink/storefront-gateway/internal/middleware"
	"github.com/dukalink/storefront-gateway/internal/model"
	"github.com/dukalink/storefront-gateway/internal/service"
)

// OrderHandler is the customer-facing order surface.
type OrderHandler struct {
	orders *service.CustomerOrders
}

func NewOrderHandler(orders *service.CustomerOrders) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderListResponse(orders))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.orders.Get(c.Request.Context(), orderID, middleware.CurrentUser(c).ID)
	if err != nil {
		if errors.Is(err, service.ErrOrderAccessDenied) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) ConfirmReceipt(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.orders.ConfirmReceipt(c.Request.Context(), orderID, middleware.CurrentUser(c).ID)
	if err != nil {
		if errors.Is(err, service.ErrOrderAccessDenied) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	if err := h.orders.Cancel(c.Request.Context(), orderID, middleware.CurrentUser(c).ID); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		case errors.Is(err, service.ErrNotCancellable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			respondBackendError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(model.OrderStatusCancelled)})
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	var items []dto.OrderItemResponse
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Name:      item.Name,
			Image:     item.Image,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	resp := dto.OrderResponse{
		ID:              order.ID,
		Items:           items,
		TotalPrice:      order.TotalPrice,
		Discount:        order.Discount,
		FinalPrice:      order.FinalPrice,
		Status:          order.Status,
		PaymentMethod:   order.PaymentMethod,
		Paid:            order.Paid,
		ClientConfirmed: order.ClientConfirmed,
		DeliveryDate:    order.DeliveryDate,
		Notes:           order.Notes,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	if ownerID, ok := order.Owner.UserID(); ok {
		resp.UserID = &ownerID
	}
	return resp
}

func toOrderListResponse(orders []model.Order) dto.OrderListResponse {
	var items []dto.OrderResponse
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i]))
	}
	return dto.OrderListResponse{Orders: items, Total: len(items)}
}
