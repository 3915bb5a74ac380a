package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/retailnet/backend/internal/application/catalog"
	"github.com/retailnet/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves the public browse surface: shops, categories and
// available products
type CatalogHandler struct {
	BaseHandler
	shops      *appcatalog.ShopService
	categories *appcatalog.CategoryService
	products   *appcatalog.ProductService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	shops *appcatalog.ShopService,
	categories *appcatalog.CategoryService,
	products *appcatalog.ProductService,
) *CatalogHandler {
	return &CatalogHandler{
		shops:      shops,
		categories: categories,
		products:   products,
	}
}

// RegisterRoutes registers public catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/shops", h.ListShops)
	rg.GET("/categories", h.ListCategories)
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/:id", h.GetProduct)
}

// ListShops lists shops currently accepting orders
func (h *CatalogHandler) ListShops(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	filter := req.ToFilter()
	shops, err := h.shops.ListOpen(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, shops, filter, len(shops))
}

// ListCategories lists all known categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	filter := req.ToFilter()
	categories, err := h.categories.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, categories, filter, len(categories))
}

// productListRequest adds catalog-specific filters to the common list params
type productListRequest struct {
	dto.ListRequest
	ShopID     string `form:"shop_id" binding:"omitempty,uuid"`
	CategoryID *int   `form:"category_id" binding:"omitempty,min=1"`
}

// ListProducts lists in-stock products of shops accepting orders
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req productListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	query := appcatalog.ProductQuery{CategoryID: req.CategoryID}
	if req.ShopID != "" {
		shopID, err := uuid.Parse(req.ShopID)
		if err != nil {
			h.BadRequest(c, "Invalid shop id")
			return
		}
		query.ShopID = &shopID
	}

	filter := req.ToFilter()
	products, err := h.products.ListAvailable(c.Request.Context(), query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, filter, len(products))
}

// GetProduct returns a single product with its parameters
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}
