package handler

import (
	"github.com/gin-gonic/gin"
	apporder "github.com/retailnet/backend/internal/application/order"
)

// BasketHandler serves the authenticated buyer's basket
type BasketHandler struct {
	BaseHandler
	baskets *apporder.BasketService
	authn   gin.HandlerFunc
	buyer   gin.HandlerFunc
}

// NewBasketHandler creates a new BasketHandler. The authn and buyer
// middlewares guard every route.
func NewBasketHandler(baskets *apporder.BasketService, authn, buyer gin.HandlerFunc) *BasketHandler {
	return &BasketHandler{baskets: baskets, authn: authn, buyer: buyer}
}

// RegisterRoutes registers buyer-only basket routes
func (h *BasketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	basket := rg.Group("/basket", h.authn, h.buyer)
	{
		basket.GET("", h.Get)
		basket.PUT("/positions", h.UpsertPosition)
		basket.GET("/total", h.Total)
	}
}

// Get returns the customer's basket, creating an empty one on first access
func (h *BasketHandler) Get(c *gin.Context) {
	customerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	basket, err := h.baskets.GetOrCreateActiveBasket(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, basket)
}

// UpsertPosition sets the amount for a product in the basket.
// Amount zero removes the position.
func (h *BasketHandler) UpsertPosition(c *gin.Context) {
	customerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	var req apporder.UpsertPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	basket, err := h.baskets.UpsertPosition(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, basket)
}

// Total returns the basket total priced against the current catalog
func (h *BasketHandler) Total(c *gin.Context) {
	customerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	total, err := h.baskets.ComputeTotal(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"total": total.String()})
}
