package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukalink/storefront-gateway/internal/api"
	"github.com/dukalink/storefront-gateway/internal/dto"
	"github.com/dukalink/storefront-gateway/internal/middleware"
	"github.com/dukalink/storefront-gateway/internal/model"
	"github.com/dukalink/storefront-gateway/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grant, err := h.authService.Register(c.Request.Context(), api.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSessionResponse(grant))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grant, err := h.authService.Login(c.Request.Context(), api.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSessionResponse(grant))
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Profile(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func toSessionResponse(grant *service.SessionGrant) dto.SessionResponse {
	return dto.SessionResponse{Token: grant.Token, User: toUserResponse(&grant.User)}
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Role:      user.Role,
	}
}
