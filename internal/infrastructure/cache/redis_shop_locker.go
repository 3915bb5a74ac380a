package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/retailnet/backend/internal/application/importer"
	"github.com/retailnet/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// releaseScript deletes the lock key only when the stored owner token
// matches, so an expired lock reacquired by someone else is never released
// by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisShopLocker serializes catalog imports per shop across instances.
// The lock carries a TTL so a crashed importer cannot wedge a shop forever.
type RedisShopLocker struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisShopLocker creates a locker backed by a new Redis connection
func NewRedisShopLocker(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisShopLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisShopLockerWithClient(client, ttl, logger), nil
}

// NewRedisShopLockerWithClient creates a locker over an existing Redis client
func NewRedisShopLockerWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisShopLocker {
	return &RedisShopLocker{
		client:    client,
		keyPrefix: "import:lock:",
		ttl:       ttl,
		logger:    logger,
	}
}

// Acquire takes the import lock for a shop name via SETNX.
// A held lock surfaces as shared.ErrImportInProgress.
func (l *RedisShopLocker) Acquire(ctx context.Context, shopName string) (func(), error) {
	key := l.keyPrefix + shopName
	owner := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, owner, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire import lock: %w", err)
	}
	if !acquired {
		return nil, shared.ErrImportInProgress
	}

	release := func() {
		// Use a fresh context so a canceled request still frees the lock.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.client, []string{key}, owner).Err(); err != nil {
			l.logger.Warn("failed to release import lock",
				zap.String("shop", shopName),
				zap.Error(err),
			)
		}
	}

	return release, nil
}

// Close closes the Redis client
func (l *RedisShopLocker) Close() error {
	return l.client.Close()
}

var _ importer.ShopLocker = (*RedisShopLocker)(nil)
