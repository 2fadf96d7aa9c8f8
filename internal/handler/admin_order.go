package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukalink/storefront-gateway/internal/dto"
	"github.com/dukalink/storefront-gateway/internal/model"
	"github.com/dukalink/storefront-gateway/internal/service"
)

// AdminOrderHandler is the back-office order surface, backed by the
// status-change workflow.
type AdminOrderHandler struct {
	workflow *service.OrderWorkflow
}

func NewAdminOrderHandler(workflow *service.OrderWorkflow) *AdminOrderHandler {
	return &AdminOrderHandler{workflow: workflow}
}

func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	force := c.Query("refresh") == "true"
	orders, err := h.workflow.List(c.Request.Context(), force)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderListResponse(orders))
}

func (h *AdminOrderHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.workflow.Open(c.Request.Context(), orderID)
	if err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.workflow.ChangeStatus(c.Request.Context(), orderID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidTransition),
			errors.Is(err, service.ErrReceiptNotConfirmed),
			errors.Is(err, service.ErrStatusUpdateInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOwnerUnresolved):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			respondBackendError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.StatusChangeResponse{Status: result.Status, Warnings: result.Warnings})
}

func (h *AdminOrderHandler) DeleteOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	if err := h.workflow.Delete(c.Request.Context(), orderID); err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
