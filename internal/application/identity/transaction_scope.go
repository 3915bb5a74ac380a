package identity

import (
	"context"

	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/confirm"
	"github.com/retailnet/backend/internal/domain/identity"
)

// TransactionScope provides transactional access to the identity-side
// repositories. Registration writes a user plus its profile (and possibly a
// shop) atomically; email confirmation pairs the token delete with the
// activation.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the identity-side
// repositories within a transaction
type TransactionalRepositories interface {
	// UserRepo returns the user repository scoped to the current transaction
	UserRepo() identity.UserRepository
	// CustomerRepo returns the customer repository scoped to the current transaction
	CustomerRepo() identity.CustomerRepository
	// ProviderRepo returns the provider repository scoped to the current transaction
	ProviderRepo() identity.ProviderRepository
	// ShopRepo returns the shop repository scoped to the current transaction
	ShopRepo() catalog.ShopRepository
	// EmailTokenRepo returns the email token repository scoped to the current transaction
	EmailTokenRepo() confirm.EmailTokenRepository
}

// NoOpTransactionScope is a transaction scope without actual transactions,
// for tests running on in-memory repositories
type NoOpTransactionScope struct {
	userRepo       identity.UserRepository
	customerRepo   identity.CustomerRepository
	providerRepo   identity.ProviderRepository
	shopRepo       catalog.ShopRepository
	emailTokenRepo confirm.EmailTokenRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	userRepo identity.UserRepository,
	customerRepo identity.CustomerRepository,
	providerRepo identity.ProviderRepository,
	shopRepo catalog.ShopRepository,
	emailTokenRepo confirm.EmailTokenRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		userRepo:       userRepo,
		customerRepo:   customerRepo,
		providerRepo:   providerRepo,
		shopRepo:       shopRepo,
		emailTokenRepo: emailTokenRepo,
	}
}

// Execute runs fn against the wrapped repositories without a transaction
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// UserRepo returns the user repository
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository { return s.userRepo }

// CustomerRepo returns the customer repository
func (s *NoOpTransactionScope) CustomerRepo() identity.CustomerRepository { return s.customerRepo }

// ProviderRepo returns the provider repository
func (s *NoOpTransactionScope) ProviderRepo() identity.ProviderRepository { return s.providerRepo }

// ShopRepo returns the shop repository
func (s *NoOpTransactionScope) ShopRepo() catalog.ShopRepository { return s.shopRepo }

// EmailTokenRepo returns the email token repository
func (s *NoOpTransactionScope) EmailTokenRepo() confirm.EmailTokenRepository { return s.emailTokenRepo }
