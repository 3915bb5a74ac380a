package persistence

import (
	"context"

	"github.com/retailnet/backend/internal/application/identity"
	"github.com/retailnet/backend/internal/application/importer"
	apporder "github.com/retailnet/backend/internal/application/order"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/confirm"
	domidentity "github.com/retailnet/backend/internal/domain/identity"
	domorder "github.com/retailnet/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormImportTransactionScope runs catalog refresh work inside a single
// database transaction
type GormImportTransactionScope struct {
	db *gorm.DB
}

// NewGormImportTransactionScope creates a new GormImportTransactionScope
func NewGormImportTransactionScope(db *gorm.DB) *GormImportTransactionScope {
	return &GormImportTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormImportTransactionScope) Execute(ctx context.Context, fn func(repos importer.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(importTransactionalRepositories{tx: tx})
	})
}

type importTransactionalRepositories struct {
	tx *gorm.DB
}

func (r importTransactionalRepositories) ShopRepo() catalog.ShopRepository {
	return NewGormShopRepository(r.tx)
}

func (r importTransactionalRepositories) CategoryRepo() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

func (r importTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r importTransactionalRepositories) ParameterRepo() catalog.ParameterRepository {
	return NewGormParameterRepository(r.tx)
}

// GormOrderTransactionScope runs basket and order state work inside a single
// database transaction
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(orderTransactionalRepositories{tx: tx})
	})
}

type orderTransactionalRepositories struct {
	tx *gorm.DB
}

func (r orderTransactionalRepositories) OrderRepo() domorder.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r orderTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r orderTransactionalRepositories) ShopRepo() catalog.ShopRepository {
	return NewGormShopRepository(r.tx)
}

func (r orderTransactionalRepositories) OrderTokenRepo() confirm.OrderTokenRepository {
	return NewGormOrderTokenRepository(r.tx)
}

// GormIdentityTransactionScope runs registration and confirmation work inside
// a single database transaction
type GormIdentityTransactionScope struct {
	db *gorm.DB
}

// NewGormIdentityTransactionScope creates a new GormIdentityTransactionScope
func NewGormIdentityTransactionScope(db *gorm.DB) *GormIdentityTransactionScope {
	return &GormIdentityTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormIdentityTransactionScope) Execute(ctx context.Context, fn func(repos identity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(identityTransactionalRepositories{tx: tx})
	})
}

type identityTransactionalRepositories struct {
	tx *gorm.DB
}

func (r identityTransactionalRepositories) UserRepo() domidentity.UserRepository {
	return NewGormUserRepository(r.tx)
}

func (r identityTransactionalRepositories) CustomerRepo() domidentity.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

func (r identityTransactionalRepositories) ProviderRepo() domidentity.ProviderRepository {
	return NewGormProviderRepository(r.tx)
}

func (r identityTransactionalRepositories) ShopRepo() catalog.ShopRepository {
	return NewGormShopRepository(r.tx)
}

func (r identityTransactionalRepositories) EmailTokenRepo() confirm.EmailTokenRepository {
	return NewGormEmailTokenRepository(r.tx)
}

var (
	_ importer.TransactionScope = (*GormImportTransactionScope)(nil)
	_ apporder.TransactionScope = (*GormOrderTransactionScope)(nil)
	_ identity.TransactionScope = (*GormIdentityTransactionScope)(nil)
)
