package catalog

import (
	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
)

// ShopResponse is a shop in API responses
type ShopResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	URL             string    `json:"url,omitempty"`
	AcceptingOrders bool      `json:"accepting_orders"`
}

// ToShopResponse converts a shop aggregate to its API representation
func ToShopResponse(shop *catalog.Shop) ShopResponse {
	return ShopResponse{
		ID:              shop.ID,
		Name:            shop.Name,
		URL:             shop.URL,
		AcceptingOrders: shop.AcceptingOrders,
	}
}

// CategoryResponse is a category in API responses
type CategoryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ToCategoryResponse converts a category to its API representation
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:   category.ID,
		Name: category.Name,
	}
}

// ProductResponse is a product offer in API responses.
// Parameters are flattened to a name/value map.
type ProductResponse struct {
	ID         uuid.UUID         `json:"id"`
	ExternalID int               `json:"external_id"`
	Name       string            `json:"name"`
	Model      string            `json:"model,omitempty"`
	CategoryID int               `json:"category_id"`
	ShopID     uuid.UUID         `json:"shop_id"`
	ShopName   string            `json:"shop_name,omitempty"`
	Price      string            `json:"price"`
	PriceRRC   string            `json:"price_rrc"`
	Quantity   int               `json:"quantity"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// ToProductResponse converts a product to its API representation.
// shopName may be empty when the caller did not resolve it.
func ToProductResponse(product *catalog.Product, shopName string) ProductResponse {
	var params map[string]string
	if len(product.Parameters) > 0 {
		params = make(map[string]string, len(product.Parameters))
		for _, pp := range product.Parameters {
			if pp.Parameter != nil {
				params[pp.Parameter.Name] = pp.Value
			}
		}
	}

	return ProductResponse{
		ID:         product.ID,
		ExternalID: product.ExternalID,
		Name:       product.Name,
		Model:      product.Model,
		CategoryID: product.CategoryID,
		ShopID:     product.ShopID,
		ShopName:   shopName,
		Price:      product.Price.StringFixed(2),
		PriceRRC:   product.PriceRRC.StringFixed(2),
		Quantity:   product.Quantity,
		Parameters: params,
	}
}
