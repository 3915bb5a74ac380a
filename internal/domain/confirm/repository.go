package confirm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmailTokenRepository defines the interface for email token persistence
type EmailTokenRepository interface {
	// FindByKey finds a token by its key
	FindByKey(ctx context.Context, key string) (*EmailToken, error)

	// FindByUser finds the token issued for a user, if any
	FindByUser(ctx context.Context, userID uuid.UUID) (*EmailToken, error)

	// Save creates a token
	Save(ctx context.Context, token *EmailToken) error

	// DeleteByKey removes a token by key and reports whether a row was
	// deleted. Redemption relies on the rows-affected result to ensure a
	// concurrent double-redeem sees at most one success.
	DeleteByKey(ctx context.Context, key string) (bool, error)

	// DeleteOlderThan removes tokens created before the cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// OrderTokenRepository defines the interface for order token persistence
type OrderTokenRepository interface {
	// FindByKey finds a token by its key
	FindByKey(ctx context.Context, key string) (*OrderToken, error)

	// FindByOrder finds the token issued for an order, if any
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*OrderToken, error)

	// Save creates a token
	Save(ctx context.Context, token *OrderToken) error

	// DeleteByKey removes a token by key and reports whether a row was deleted
	DeleteByKey(ctx context.Context, key string) (bool, error)

	// DeleteOlderThan removes tokens created before the cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
