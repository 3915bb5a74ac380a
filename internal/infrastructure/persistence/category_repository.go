package persistence

import (
	"context"
	"errors"

	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCategoryRepository persists catalog categories with GORM.
type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID loads a category by its feed-supplied identifier.
func (r *GormCategoryRepository) FindByID(ctx context.Context, id int) (*catalog.Category, error) {
	var c catalog.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAll lists categories, optionally narrowed by a name search.
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Category{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var out []catalog.Category
	if err := applyPagination(query, filter).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save upserts a category row.
func (r *GormCategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
