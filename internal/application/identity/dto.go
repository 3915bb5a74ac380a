package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/identity"
)

// RegisterCustomerRequest creates a buyer account with its profile
type RegisterCustomerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	City      string `json:"city" binding:"max=100"`
	Street    string `json:"street" binding:"max=200"`
	House     string `json:"house" binding:"max=50"`
	Phone     string `json:"phone" binding:"max=50"`
}

// RegisterProviderRequest creates a provider account attached to a shop.
// The shop is resolved or created by name, the same reconciliation key the
// catalog importer uses.
type RegisterProviderRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	ShopName  string `json:"shop_name" binding:"required,max=100"`
	Company   string `json:"company" binding:"max=200"`
	Position  string `json:"position" binding:"max=100"`
}

// LoginRequest authenticates an account
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is an account in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a user aggregate to its API representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role.String(),
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	}
}

// TokenPairResponse carries the issued JWT pair
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// LoginResponse is returned on successful authentication
type LoginResponse struct {
	User   UserResponse      `json:"user"`
	Tokens TokenPairResponse `json:"tokens"`
}
