package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/order"
	"github.com/retailnet/backend/internal/domain/shared"
	"github.com/retailnet/backend/internal/domain/shared/valueobject"
)

// BasketService manages the customer's active basket.
// Each customer has at most one basket-status order, created lazily on first
// access. Positions are written with replace-on-conflict semantics so two
// concurrent mutations of different products never lose updates.
type BasketService struct {
	orderRepo   order.OrderRepository
	productRepo catalog.ProductRepository
	shopRepo    catalog.ShopRepository
}

// NewBasketService creates a new BasketService
func NewBasketService(orderRepo order.OrderRepository, productRepo catalog.ProductRepository, shopRepo catalog.ShopRepository) *BasketService {
	return &BasketService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
	}
}

// GetOrCreateActiveBasket returns the customer's basket, creating one if absent
func (s *BasketService) GetOrCreateActiveBasket(ctx context.Context, customerID uuid.UUID) (*OrderResponse, error) {
	basket, err := s.activeBasket(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.pricedResponse(ctx, basket)
}

// UpsertPosition sets the amount for a product in the customer's basket.
// A non-positive amount removes the position; the insert branch validates
// that the product exists.
func (s *BasketService) UpsertPosition(ctx context.Context, customerID uuid.UUID, req UpsertPositionRequest) (*OrderResponse, error) {
	basket, err := s.activeBasket(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		if _, err := basket.UpsertPosition(req.ProductID, req.Amount); err != nil {
			return nil, err
		}
		if err := s.orderRepo.DeletePosition(ctx, basket.ID, req.ProductID); err != nil {
			return nil, err
		}
		return s.pricedResponse(ctx, basket)
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrProductNotFound
		}
		return nil, err
	}

	if _, err := basket.UpsertPosition(req.ProductID, req.Amount); err != nil {
		return nil, err
	}

	position := basket.GetPosition(req.ProductID)
	if err := s.orderRepo.ReplacePosition(ctx, position); err != nil {
		return nil, err
	}

	return s.pricedResponse(ctx, basket)
}

// ComputeTotal returns the basket total priced against the current catalog
func (s *BasketService) ComputeTotal(ctx context.Context, customerID uuid.UUID) (valueobject.Money, error) {
	basket, err := s.orderRepo.FindBasket(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return valueobject.ZeroRUB(), nil
		}
		return valueobject.Money{}, err
	}

	products, err := s.productRepo.FindByIDs(ctx, positionProductIDs(basket))
	if err != nil {
		return valueobject.Money{}, err
	}

	total := valueobject.ZeroRUB()
	byID := productMap(products)
	for _, position := range basket.Positions {
		if product, ok := byID[position.ProductID]; ok {
			total = total.MustAdd(valueobject.NewMoneyRUB(product.Price).MultiplyByInt(int64(position.Amount)))
		}
	}
	return total, nil
}

// activeBasket returns the customer's basket-status order, creating it lazily
func (s *BasketService) activeBasket(ctx context.Context, customerID uuid.UUID) (*order.Order, error) {
	basket, err := s.orderRepo.FindBasket(ctx, customerID)
	if err == nil {
		return basket, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	basket, err = order.NewBasket(customerID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, basket); err != nil {
		return nil, err
	}
	return basket, nil
}

// pricedResponse builds the priced basket view
func (s *BasketService) pricedResponse(ctx context.Context, o *order.Order) (*OrderResponse, error) {
	products, err := s.productRepo.FindByIDs(ctx, positionProductIDs(o))
	if err != nil {
		return nil, err
	}

	shopNames, err := shopNamesFor(ctx, s.shopRepo, products)
	if err != nil {
		return nil, err
	}

	response := priceOrder(o, productMap(products), shopNames)
	return &response, nil
}

// productMap indexes products by id
func productMap(products []catalog.Product) map[uuid.UUID]catalog.Product {
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}
	return byID
}

// shopNamesFor resolves the names of the shops owning the given products
func shopNamesFor(ctx context.Context, shopRepo catalog.ShopRepository, products []catalog.Product) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for _, product := range products {
		if _, ok := names[product.ShopID]; ok {
			continue
		}
		shop, err := shopRepo.FindByID(ctx, product.ShopID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		names[shop.ID] = shop.Name
	}
	return names, nil
}
