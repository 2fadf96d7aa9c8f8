package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/dto"
	"github.com/dukalink/storefront-gateway/internal/service"
)

type CouponHandler struct {
	coupons *service.CouponService
}

func NewCouponHandler(coupons *service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

func (h *CouponHandler) List(c *gin.Context) {
	coupons, err := h.coupons.List(c.Request.Context())
	if err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons, "total": len(coupons)})
}

func (h *CouponHandler) Create(c *gin.Context) {
	var req api.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := h.coupons.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrExpiryInPast) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon ID"})
		return
	}

	if err := h.coupons.Deactivate(c.Request.Context(), id); err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// Validate checks a code against the usability rule and prices the
// discount for the given total.
func (h *CouponHandler) Validate(c *gin.Context) {
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, discount, err := h.coupons.Validate(c.Request.Context(), req.Code, req.Total)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotUsable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateCouponResponse{Code: coupon.Code, Discount: discount})
}
