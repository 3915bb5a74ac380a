package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID, positions included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindBasket finds the customer's current basket-status order.
	// Returns shared.ErrNotFound when the customer has no open basket.
	FindBasket(ctx context.Context, customerID uuid.UUID) (*Order, error)

	// FindByCustomer finds the customer's orders excluding the basket
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByShop finds non-basket orders containing at least one position
	// whose product belongs to the shop
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order together with its positions
	Save(ctx context.Context, order *Order) error

	// ReplacePosition writes a single position with replace-on-conflict
	// semantics on (order, product). A conditional write, not read-then-write,
	// so concurrent basket mutations on different products do not lose updates.
	ReplacePosition(ctx context.Context, position *OrderPosition) error

	// DeletePosition removes the position for a product, if any
	DeletePosition(ctx context.Context, orderID, productID uuid.UUID) error

	// Delete removes an order and its positions
	Delete(ctx context.Context, id uuid.UUID) error
}
