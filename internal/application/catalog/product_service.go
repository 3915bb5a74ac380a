package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/shared"
)

// ProductQuery narrows a product listing
type ProductQuery struct {
	ShopID     *uuid.UUID
	CategoryID *int
}

// ProductService serves the buyer-facing product views.
// Listings only surface offers that can actually be ordered: in-stock
// products of shops currently accepting orders.
type ProductService struct {
	productRepo catalog.ProductRepository
	shopRepo    catalog.ShopRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, shopRepo catalog.ShopRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		shopRepo:    shopRepo,
	}
}

// ListAvailable returns orderable products matching the query
func (s *ProductService) ListAvailable(ctx context.Context, query ProductQuery, filter shared.Filter) ([]ProductResponse, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	if query.ShopID != nil {
		filter.Filters["shop_id"] = *query.ShopID
	}
	if query.CategoryID != nil {
		filter.Filters["category_id"] = *query.CategoryID
	}

	products, err := s.productRepo.FindAvailable(ctx, filter)
	if err != nil {
		return nil, err
	}

	shopNames, err := s.shopNames(ctx, products)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i], shopNames[products[i].ShopID]))
	}
	return responses, nil
}

// Get returns a single product with its parameters and shop name
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	shopName := ""
	if shop, err := s.shopRepo.FindByID(ctx, product.ShopID); err == nil {
		shopName = shop.Name
	}

	response := ToProductResponse(product, shopName)
	return &response, nil
}

// shopNames resolves the names of every shop appearing in the listing
func (s *ProductService) shopNames(ctx context.Context, products []catalog.Product) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for i := range products {
		shopID := products[i].ShopID
		if _, ok := names[shopID]; ok {
			continue
		}
		shop, err := s.shopRepo.FindByID(ctx, shopID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		names[shopID] = shop.Name
	}
	return names, nil
}
