package persistence

import (
	"context"
	"errors"

	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormParameterRepository implements ParameterRepository using GORM
type GormParameterRepository struct {
	db *gorm.DB
}

// NewGormParameterRepository creates a new GormParameterRepository
func NewGormParameterRepository(db *gorm.DB) *GormParameterRepository {
	return &GormParameterRepository{db: db}
}

// FindByName finds a parameter by its globally unique name
func (r *GormParameterRepository) FindByName(ctx context.Context, name string) (*catalog.Parameter, error) {
	var parameter catalog.Parameter
	if err := r.db.WithContext(ctx).First(&parameter, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &parameter, nil
}

// Save creates or updates a parameter
func (r *GormParameterRepository) Save(ctx context.Context, parameter *catalog.Parameter) error {
	return r.db.WithContext(ctx).Save(parameter).Error
}

var _ catalog.ParameterRepository = (*GormParameterRepository)(nil)
