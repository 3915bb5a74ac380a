package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/retailnet/backend/internal/application/identity"
	"github.com/retailnet/backend/internal/interfaces/http/dto"
)

// AuthHandler handles account registration, confirmation and login
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers auth routes, all of them public
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.RegisterCustomer)
		auth.POST("/register/provider", h.RegisterProvider)
		auth.GET("/confirm", h.Confirm)
		auth.POST("/login", h.Login)
	}
}

// RegisterCustomer creates an inactive buyer account and triggers the
// confirmation email
func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req identity.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	user, err := h.authService.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// RegisterProvider creates an inactive provider account attached to a shop
func (h *AuthHandler) RegisterProvider(c *gin.Context) {
	var req identity.RegisterProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	user, err := h.authService.RegisterProvider(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// Confirm redeems an email confirmation token and activates the account
func (h *AuthHandler) Confirm(c *gin.Context) {
	var req dto.KeyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	user, err := h.authService.ConfirmEmail(c.Request.Context(), req.Key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Login authenticates an active account and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
