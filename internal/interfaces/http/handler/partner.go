package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/retailnet/backend/internal/application/catalog"
	"github.com/retailnet/backend/internal/application/importer"
	apporder "github.com/retailnet/backend/internal/application/order"
	"github.com/retailnet/backend/internal/interfaces/http/dto"
)

// PartnerHandler serves the provider-side surface: catalog imports, shop
// state and order fulfillment
type PartnerHandler struct {
	BaseHandler
	imports  *importer.ImportService
	shops    *appcatalog.ShopService
	orders   *apporder.OrderService
	authn    gin.HandlerFunc
	provider gin.HandlerFunc
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(
	imports *importer.ImportService,
	shops *appcatalog.ShopService,
	orders *apporder.OrderService,
	authn, provider gin.HandlerFunc,
) *PartnerHandler {
	return &PartnerHandler{
		imports:  imports,
		shops:    shops,
		orders:   orders,
		authn:    authn,
		provider: provider,
	}
}

// RegisterRoutes registers provider-only partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partner := rg.Group("/partner", h.authn, h.provider)
	{
		partner.POST("/import", h.Import)
		partner.GET("/import/history", h.ImportHistory)
		partner.GET("/shop", h.GetShop)
		partner.PUT("/shop/state", h.SetShopState)
		partner.GET("/orders", h.ListOrders)
		partner.PUT("/orders/:id/status", h.SetOrderStatus)
	}
}

// importRequest supplies the catalog feed by URL or as an inline document
type importRequest struct {
	URL    string `json:"url" binding:"omitempty,url,max=500"`
	Source string `json:"source" binding:"omitempty"`
}

// Import runs a full catalog refresh for the provider's shop
func (h *PartnerHandler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.URL == "" && req.Source == "" {
		h.BadRequest(c, "Either url or source is required")
		return
	}

	shop, err := h.providerShop(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.imports.ImportCatalog(c.Request.Context(), importer.ImportRequest{
		Source:        []byte(req.Source),
		URL:           req.URL,
		OwnerShopName: shop.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ImportHistory lists past import runs for the provider's shop
func (h *PartnerHandler) ImportHistory(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	shop, err := h.providerShop(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter := req.ToFilter()
	runs, err := h.imports.ListRuns(c.Request.Context(), shop.Name, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, runs, filter, len(runs))
}

// GetShop returns the provider's shop
func (h *PartnerHandler) GetShop(c *gin.Context) {
	shop, err := h.providerShop(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shop)
}

// shopStateRequest toggles whether the shop accepts orders
type shopStateRequest struct {
	AcceptingOrders *bool `json:"accepting_orders" binding:"required"`
}

// SetShopState toggles the shop's accepting-orders flag
func (h *PartnerHandler) SetShopState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user identity")
		return
	}

	var req shopStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	shop, err := h.shops.SetAcceptingOrders(c.Request.Context(), userID, *req.AcceptingOrders)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shop)
}

// ListOrders lists orders containing the shop's products, basket excluded
func (h *PartnerHandler) ListOrders(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	shop, err := h.providerShop(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	filter := req.ToFilter()
	orders, err := h.orders.ListForShop(c.Request.Context(), shop.ID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, filter, len(orders))
}

// SetOrderStatus moves an order through the fulfillment states
func (h *PartnerHandler) SetOrderStatus(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.ValidationError(c, err)
		return
	}

	orderID, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	var req apporder.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	shop, err := h.providerShop(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.orders.SetStatus(c.Request.Context(), shop.ID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// providerShop resolves the shop attached to the authenticated provider
func (h *PartnerHandler) providerShop(c *gin.Context) (*appcatalog.ShopResponse, error) {
	userID, err := getUserID(c)
	if err != nil {
		return nil, err
	}
	return h.shops.GetForProvider(c.Request.Context(), userID)
}
