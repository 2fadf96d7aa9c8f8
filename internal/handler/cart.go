package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukalink/storefront-gateway/internal/cart"
	"github.com/dukalink/storefront-gateway/internal/dto"
	"github.com/dukalink/storefront-gateway/internal/middleware"
	"github.com/dukalink/storefront-gateway/internal/service"
)

// CartHandler operates on the session's in-memory cart. Prices and
// names come from the catalog at add time, never from the client.
type CartHandler struct {
	carts   *cart.Store
	catalog *service.CatalogService
}

func NewCartHandler(carts *cart.Store, catalog *service.CatalogService) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, toCartResponse(h.carts.Get(middleware.SessionID(c))))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	sessionCart := h.carts.Get(middleware.SessionID(c))
	sessionCart.AddItem(cart.Item{
		ProductID: product.ID,
		VariantID: req.VariantID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Color:     req.Color,
		Size:      req.Size,
	})

	c.JSON(http.StatusOK, toCartResponse(sessionCart))
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionCart := h.carts.Get(middleware.SessionID(c))
	sessionCart.UpdateQuantity(c.Param("key"), req.Quantity)
	c.JSON(http.StatusOK, toCartResponse(sessionCart))
}

func (h *CartHandler) DeleteItem(c *gin.Context) {
	sessionCart := h.carts.Get(middleware.SessionID(c))
	sessionCart.RemoveItem(c.Param("key"))
	c.JSON(http.StatusOK, toCartResponse(sessionCart))
}

func (h *CartHandler) Clear(c *gin.Context) {
	sessionCart := h.carts.Get(middleware.SessionID(c))
	sessionCart.Clear()
	c.JSON(http.StatusOK, toCartResponse(sessionCart))
}

func toCartResponse(c *cart.Cart) dto.CartResponse {
	var items []dto.CartItemResponse
	for _, it := range c.Items() {
		items = append(items, dto.CartItemResponse{
			Key:       it.Key,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Image:     it.Image,
			Color:     it.Color,
			Size:      it.Size,
			Quantity:  it.Quantity,
		})
	}
	return dto.CartResponse{
		Items:      items,
		TotalCount: c.TotalCount(),
		TotalPrice: c.TotalPrice(),
	}
}
