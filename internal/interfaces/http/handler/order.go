package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apporder "github.com/retailnet/backend/internal/application/order"
	"github.com/retailnet/backend/internal/interfaces/http/dto"
)

// OrderHandler serves the buyer's order lifecycle: submission, token
// confirmation and history
type OrderHandler struct {
	BaseHandler
	orders *apporder.OrderService
	authn  gin.HandlerFunc
	buyer  gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *apporder.OrderService, authn, buyer gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{orders: orders, authn: authn, buyer: buyer}
}

// RegisterRoutes registers order routes. Confirmation is public: the token
// key is the whole credential, the link must work from a mail client
// without a session.
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders/confirm", h.Confirm)

	orders := rg.Group("/orders", h.authn, h.buyer)
	{
		orders.POST("", h.Submit)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
	}
}

// Submit turns the basket into a new order and triggers the confirmation mail
func (h *OrderHandler) Submit(c *gin.Context) {
	customerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	var req apporder.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.orders.Submit(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Confirm redeems an order confirmation token
func (h *OrderHandler) Confirm(c *gin.Context) {
	var req dto.KeyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.orders.ConfirmByToken(c.Request.Context(), req.Key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the customer's orders, basket excluded
func (h *OrderHandler) List(c *gin.Context) {
	customerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	filter := req.ToFilter()
	orders, err := h.orders.ListForCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, filter, len(orders))
}

// Get returns one of the customer's orders
func (h *OrderHandler) Get(c *gin.Context) {
	customerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	orderID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	result, err := h.orders.GetForCustomer(c.Request.Context(), customerID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
