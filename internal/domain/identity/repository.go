package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email (stored lowercase)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether an account exists for the email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}

// CustomerRepository defines the interface for customer profile persistence
type CustomerRepository interface {
	// FindByUserID finds the customer profile for a user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Customer, error)

	// Save creates or updates a customer profile
	Save(ctx context.Context, customer *Customer) error
}

// ProviderRepository defines the interface for provider profile persistence
type ProviderRepository interface {
	// FindByUserID finds the provider profile for a user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Provider, error)

	// FindByShop finds all provider profiles attached to a shop
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]Provider, error)

	// Save creates or updates a provider profile
	Save(ctx context.Context, provider *Provider) error
}
