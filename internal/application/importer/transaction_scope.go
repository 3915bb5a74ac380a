package importer

import (
	"context"

	"github.com/retailnet/backend/internal/domain/catalog"
)

// TransactionScope provides transactional access to the catalog repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the catalog repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// ShopRepo returns the shop repository scoped to the current transaction
	ShopRepo() catalog.ShopRepository
	// CategoryRepo returns the category repository scoped to the current transaction
	CategoryRepo() catalog.CategoryRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// ParameterRepo returns the parameter repository scoped to the current transaction
	ParameterRepo() catalog.ParameterRepository
}

// NoOpTransactionScope is a transaction scope without actual transactions.
// Useful for tests where the repositories are in-memory fakes.
type NoOpTransactionScope struct {
	shopRepo      catalog.ShopRepository
	categoryRepo  catalog.CategoryRepository
	productRepo   catalog.ProductRepository
	parameterRepo catalog.ParameterRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	shopRepo catalog.ShopRepository,
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	parameterRepo catalog.ParameterRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		shopRepo:      shopRepo,
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		parameterRepo: parameterRepo,
	}
}

// Execute runs fn against the wrapped repositories without a transaction
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ShopRepo returns the shop repository
func (s *NoOpTransactionScope) ShopRepo() catalog.ShopRepository { return s.shopRepo }

// CategoryRepo returns the category repository
func (s *NoOpTransactionScope) CategoryRepo() catalog.CategoryRepository { return s.categoryRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

// ParameterRepo returns the parameter repository
func (s *NoOpTransactionScope) ParameterRepo() catalog.ParameterRepository { return s.parameterRepo }
