package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/confirm"
	"github.com/retailnet/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEmailTokenRepository implements EmailTokenRepository using GORM
type GormEmailTokenRepository struct {
	db *gorm.DB
}

// NewGormEmailTokenRepository creates a new GormEmailTokenRepository
func NewGormEmailTokenRepository(db *gorm.DB) *GormEmailTokenRepository {
	return &GormEmailTokenRepository{db: db}
}

// FindByKey finds a token by its key
func (r *GormEmailTokenRepository) FindByKey(ctx context.Context, key string) (*confirm.EmailToken, error) {
	var token confirm.EmailToken
	if err := r.db.WithContext(ctx).First(&token, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// FindByUser finds the token issued for a user, if any
func (r *GormEmailTokenRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*confirm.EmailToken, error) {
	var token confirm.EmailToken
	if err := r.db.WithContext(ctx).First(&token, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Save creates a token
func (r *GormEmailTokenRepository) Save(ctx context.Context, token *confirm.EmailToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// DeleteByKey removes a token by key and reports whether a row was deleted
func (r *GormEmailTokenRepository) DeleteByKey(ctx context.Context, key string) (bool, error) {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&confirm.EmailToken{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteOlderThan removes tokens created before the cutoff
func (r *GormEmailTokenRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&confirm.EmailToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GormOrderTokenRepository implements OrderTokenRepository using GORM
type GormOrderTokenRepository struct {
	db *gorm.DB
}

// NewGormOrderTokenRepository creates a new GormOrderTokenRepository
func NewGormOrderTokenRepository(db *gorm.DB) *GormOrderTokenRepository {
	return &GormOrderTokenRepository{db: db}
}

// FindByKey finds a token by its key
func (r *GormOrderTokenRepository) FindByKey(ctx context.Context, key string) (*confirm.OrderToken, error) {
	var token confirm.OrderToken
	if err := r.db.WithContext(ctx).First(&token, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// FindByOrder finds the token issued for an order, if any
func (r *GormOrderTokenRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*confirm.OrderToken, error) {
	var token confirm.OrderToken
	if err := r.db.WithContext(ctx).First(&token, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Save creates a token
func (r *GormOrderTokenRepository) Save(ctx context.Context, token *confirm.OrderToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// DeleteByKey removes a token by key and reports whether a row was deleted
func (r *GormOrderTokenRepository) DeleteByKey(ctx context.Context, key string) (bool, error) {
	result := r.db.WithContext(ctx).Where("key = ?", key).Delete(&confirm.OrderToken{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteOlderThan removes tokens created before the cutoff
func (r *GormOrderTokenRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&confirm.OrderToken{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var (
	_ confirm.EmailTokenRepository = (*GormEmailTokenRepository)(nil)
	_ confirm.OrderTokenRepository = (*GormOrderTokenRepository)(nil)
)
