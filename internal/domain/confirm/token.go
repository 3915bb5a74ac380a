package confirm

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/shared"
)

// KeyGenerator produces unguessable token keys.
// Injected so the protocol carries no hidden global randomness source.
type KeyGenerator interface {
	// Generate returns a new random key
	Generate() (string, error)
}

const (
	minKeyLength = 16
	maxKeyLength = 64
)

// EmailToken authorizes the activation of a user account.
// One token per user: re-requesting a confirmation email returns the
// existing token unchanged instead of rotating the key.
type EmailToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EmailToken) TableName() string {
	return "confirm_email_tokens"
}

// NewEmailToken creates a new email confirmation token
func NewEmailToken(userID uuid.UUID, key string) (*EmailToken, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	return &EmailToken{
		ID:        uuid.New(),
		Key:       key,
		UserID:    userID,
		CreatedAt: time.Now(),
	}, nil
}

// OrderToken authorizes the confirmation of a submitted order.
// It carries the delivery address proposed at submission; the address
// becomes authoritative on the order only when the token is redeemed.
type OrderToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key       string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Address   string    `gorm:"type:varchar(500);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderToken) TableName() string {
	return "confirm_order_tokens"
}

// NewOrderToken creates a new order confirmation token
func NewOrderToken(orderID uuid.UUID, key, address string) (*OrderToken, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if address == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Delivery address is required")
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	return &OrderToken{
		ID:        uuid.New(),
		Key:       key,
		OrderID:   orderID,
		Address:   address,
		CreatedAt: time.Now(),
	}, nil
}

// validateKey validates a generated token key
func validateKey(key string) error {
	if len(key) < minKeyLength {
		return shared.NewDomainError("INVALID_KEY", "Token key is too short")
	}
	if len(key) > maxKeyLength {
		return shared.NewDomainError("INVALID_KEY", "Token key is too long")
	}
	return nil
}
