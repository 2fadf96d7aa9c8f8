package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukalink/storefront-gateway/internal/cart"
	"github.com/dukalink/storefront-gateway/internal/checkout"
	"github.com/dukalink/storefront-gateway/internal/dto"
	"github.com/dukalink/storefront-gateway/internal/middleware"
	"github.com/dukalink/storefront-gateway/internal/model"
	"github.com/dukalink/storefront-gateway/internal/service"
)

type CheckoutHandler struct {
	carts           *cart.Store
	checkoutService *service.CheckoutService
}

func NewCheckoutHandler(carts *cart.Store, checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, checkoutService: checkoutService}
}

// Check reports whether the confirm action should be enabled for the
// current payment selection. No backend call is made.
func (h *CheckoutHandler) Check(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sel := toPaymentSelection(req)
	if err := sel.Validate(middleware.CurrentUser(c).Phone); err != nil {
		c.JSON(http.StatusOK, dto.PaymentCheckResponse{Reason: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.PaymentCheckResponse{Complete: true})
}

func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionCart := h.carts.Get(middleware.SessionID(c))
	order, err := h.checkoutService.Submit(
		c.Request.Context(),
		sessionCart,
		toPaymentSelection(req),
		middleware.CurrentUser(c).Phone,
		req.CouponCode,
		req.Notes,
	)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidMethod),
			errors.Is(err, checkout.ErrPhoneRequired),
			errors.Is(err, checkout.ErrBankFieldsRequired),
			errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, service.ErrCouponNotUsable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			respondBackendError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func toPaymentSelection(req dto.CheckoutRequest) checkout.PaymentSelection {
	return checkout.PaymentSelection{
		Method:              model.PaymentMethod(req.PaymentMethod),
		PhoneNumber:         req.PhoneNumber,
		UseRegisteredNumber: req.UseRegisteredNumber,
		BankName:            req.BankName,
		AccountNumber:       req.AccountNumber,
		AccountHolder:       req.AccountHolder,
	}
}
