package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/confirm"
	"github.com/retailnet/backend/internal/domain/order"
	"github.com/retailnet/backend/internal/domain/shared"
)

// In-memory repositories shared by the basket and order service tests.

type fakeOrderRepo struct {
	orders map[uuid.UUID]*order.Order
	// productShops mirrors the catalog so FindByShop can filter
	productShops map[uuid.UUID]uuid.UUID
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:       make(map[uuid.UUID]*order.Order),
		productShops: make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindBasket(ctx context.Context, customerID uuid.UUID) (*order.Order, error) {
	for _, o := range r.orders {
		if o.CustomerID == customerID && o.IsBasket() {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	result := make([]order.Order, 0)
	for _, o := range r.orders {
		if o.CustomerID == customerID && !o.IsBasket() {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	result := make([]order.Order, 0)
	for _, o := range r.orders {
		if o.IsBasket() {
			continue
		}
		for _, position := range o.Positions {
			if r.productShops[position.ProductID] == shopID {
				result = append(result, *o)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) Save(ctx context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) ReplacePosition(ctx context.Context, position *order.OrderPosition) error {
	o, ok := r.orders[position.OrderID]
	if !ok {
		return shared.ErrNotFound
	}
	kept := make([]order.OrderPosition, 0, len(o.Positions))
	for _, existing := range o.Positions {
		if existing.ProductID != position.ProductID {
			kept = append(kept, existing)
		}
	}
	o.Positions = append(kept, *position)
	return nil
}

func (r *fakeOrderRepo) DeletePosition(ctx context.Context, orderID, productID uuid.UUID) error {
	o, ok := r.orders[orderID]
	if !ok {
		return nil
	}
	kept := make([]order.OrderPosition, 0, len(o.Positions))
	for _, existing := range o.Positions {
		if existing.ProductID != productID {
			kept = append(kept, existing)
		}
	}
	o.Positions = kept
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

type fakeCatalog struct {
	products map[uuid.UUID]*catalog.Product
	shops    map[uuid.UUID]*catalog.Shop
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: make(map[uuid.UUID]*catalog.Product),
		shops:    make(map[uuid.UUID]*catalog.Shop),
	}
}

func (c *fakeCatalog) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if product, ok := c.products[id]; ok {
		return product, nil
	}
	return nil, shared.ErrNotFound
}

func (c *fakeCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := c.products[id]; ok {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (c *fakeCatalog) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0)
	for _, product := range c.products {
		if product.ShopID == shopID {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (c *fakeCatalog) FindAvailable(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0)
	for _, product := range c.products {
		if shop, ok := c.shops[product.ShopID]; ok && shop.AcceptingOrders {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (c *fakeCatalog) DeleteByShop(ctx context.Context, shopID uuid.UUID) error {
	for id, product := range c.products {
		if product.ShopID == shopID {
			delete(c.products, id)
		}
	}
	return nil
}

func (c *fakeCatalog) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	for _, product := range products {
		c.products[product.ID] = product
	}
	return nil
}

func (c *fakeCatalog) CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	for _, product := range c.products {
		if product.ShopID == shopID {
			count++
		}
	}
	return count, nil
}

type fakeShopRepo struct {
	catalog *fakeCatalog
}

func (r *fakeShopRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	if shop, ok := r.catalog.shops[id]; ok {
		return shop, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeShopRepo) FindByName(ctx context.Context, name string) (*catalog.Shop, error) {
	for _, shop := range r.catalog.shops {
		if shop.Name == name {
			return shop, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeShopRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Shop, error) {
	result := make([]catalog.Shop, 0, len(r.catalog.shops))
	for _, shop := range r.catalog.shops {
		result = append(result, *shop)
	}
	return result, nil
}

func (r *fakeShopRepo) Save(ctx context.Context, shop *catalog.Shop) error {
	r.catalog.shops[shop.ID] = shop
	return nil
}

type fakeOrderTokenRepo struct {
	tokens map[string]*confirm.OrderToken
}

func newFakeOrderTokenRepo() *fakeOrderTokenRepo {
	return &fakeOrderTokenRepo{tokens: make(map[string]*confirm.OrderToken)}
}

func (r *fakeOrderTokenRepo) FindByKey(ctx context.Context, key string) (*confirm.OrderToken, error) {
	if token, ok := r.tokens[key]; ok {
		return token, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderTokenRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) (*confirm.OrderToken, error) {
	for _, token := range r.tokens {
		if token.OrderID == orderID {
			return token, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderTokenRepo) Save(ctx context.Context, token *confirm.OrderToken) error {
	r.tokens[token.Key] = token
	return nil
}

func (r *fakeOrderTokenRepo) DeleteByKey(ctx context.Context, key string) (bool, error) {
	if _, ok := r.tokens[key]; !ok {
		return false, nil
	}
	delete(r.tokens, key)
	return true, nil
}

func (r *fakeOrderTokenRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for key, token := range r.tokens {
		if token.CreatedAt.Before(cutoff) {
			delete(r.tokens, key)
			removed++
		}
	}
	return removed, nil
}
