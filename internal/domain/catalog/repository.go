package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/shared"
)

// ShopRepository defines the interface for shop persistence
type ShopRepository interface {
	// FindByID finds a shop by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)

	// FindByName finds a shop by its exact name (case-sensitive)
	FindByName(ctx context.Context, name string) (*Shop, error)

	// FindAll finds all shops matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Shop, error)

	// Save creates or updates a shop
	Save(ctx context.Context, shop *Shop) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its feed-supplied id
	FindByID(ctx context.Context, id int) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID, parameters included
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindByShop finds all products owned by a shop
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindAvailable finds products of shops currently accepting orders
	FindAvailable(ctx context.Context, filter shared.Filter) ([]Product, error)

	// DeleteByShop removes all products owned by a shop.
	// Used by the importer's full-refresh step; parameter rows cascade.
	DeleteByShop(ctx context.Context, shopID uuid.UUID) error

	// SaveBatch inserts multiple products with their parameter rows
	SaveBatch(ctx context.Context, products []*Product) error

	// CountByShop counts products owned by a shop
	CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error)
}

// ParameterRepository defines the interface for parameter persistence
type ParameterRepository interface {
	// FindByName finds a parameter by its globally unique name
	FindByName(ctx context.Context, name string) (*Parameter, error)

	// Save creates or updates a parameter
	Save(ctx context.Context, parameter *Parameter) error
}
