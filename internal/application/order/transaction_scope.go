package order

import (
	"context"

	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/confirm"
	"github.com/retailnet/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the order-side
// repositories. Order submission and token redemption must be atomic with
// their token writes, so both run through this scope.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the order-side repositories
// within a transaction
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.OrderRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// ShopRepo returns the shop repository scoped to the current transaction
	ShopRepo() catalog.ShopRepository
	// OrderTokenRepo returns the order token repository scoped to the current transaction
	OrderTokenRepo() confirm.OrderTokenRepository
}

// NoOpTransactionScope is a transaction scope without actual transactions,
// for tests running on in-memory repositories
type NoOpTransactionScope struct {
	orderRepo      order.OrderRepository
	productRepo    catalog.ProductRepository
	shopRepo       catalog.ShopRepository
	orderTokenRepo confirm.OrderTokenRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	shopRepo catalog.ShopRepository,
	orderTokenRepo confirm.OrderTokenRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		shopRepo:       shopRepo,
		orderTokenRepo: orderTokenRepo,
	}
}

// Execute runs fn against the wrapped repositories without a transaction
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository { return s.orderRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// ShopRepo returns the shop repository
func (s *NoOpTransactionScope) ShopRepo() catalog.ShopRepository { return s.shopRepo }

// OrderTokenRepo returns the order token repository
func (s *NoOpTransactionScope) OrderTokenRepo() confirm.OrderTokenRepository { return s.orderTokenRepo }
