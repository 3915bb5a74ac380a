package cache

import (
	"context"
	"sync"

	"github.com/retailnet/backend/internal/application/importer"
	"github.com/retailnet/backend/internal/domain/shared"
)

// InMemoryShopLocker serializes imports within a single process.
// Suitable for single-instance deployments and testing; distributed
// deployments need RedisShopLocker so the lock is shared across instances.
type InMemoryShopLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewInMemoryShopLocker creates a new in-memory shop locker
func NewInMemoryShopLocker() *InMemoryShopLocker {
	return &InMemoryShopLocker{
		held: make(map[string]bool),
	}
}

// Acquire takes the import lock for a shop name
func (l *InMemoryShopLocker) Acquire(ctx context.Context, shopName string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[shopName] {
		return nil, shared.ErrImportInProgress
	}
	l.held[shopName] = true

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, shopName)
	}

	return release, nil
}

var _ importer.ShopLocker = (*InMemoryShopLocker)(nil)
