package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID, parameters included
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Parameters").
		Preload("Parameters.Parameter").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Parameters").
		Preload("Parameters.Parameter").
		Find(&products, "id IN ?", ids).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByShop finds all products owned by a shop
func (r *GormProductRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Parameters").
		Preload("Parameters.Parameter").
		Where("shop_id = ?", shopID)
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var products []catalog.Product
	if err := applyPagination(query, filter).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAvailable finds in-stock products of shops currently accepting orders
func (r *GormProductRepository) FindAvailable(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Preload("Parameters").
		Preload("Parameters.Parameter").
		Joins("JOIN shops ON shops.id = products.shop_id").
		Where("shops.accepting_orders = ?", true).
		Where("products.quantity > 0")

	if shopID, ok := filter.Filters["shop_id"]; ok {
		query = query.Where("products.shop_id = ?", shopID)
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("products.category_id = ?", categoryID)
	}
	if filter.Search != "" {
		query = query.Where("products.name LIKE ?", "%"+filter.Search+"%")
	}

	// Joined tables carry created_at too, qualify the default ordering.
	if filter.OrderBy == "created_at" {
		filter.OrderBy = "products.created_at"
	}

	var products []catalog.Product
	if err := applyPagination(query, filter).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DeleteByShop removes all products owned by a shop.
// Parameter rows go first so the delete works without relying on database
// level cascades.
func (r *GormProductRepository) DeleteByShop(ctx context.Context, shopID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("product_id IN (?)", r.db.Model(&catalog.Product{}).Select("id").Where("shop_id = ?", shopID)).
		Delete(&catalog.ProductParameter{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("shop_id = ?", shopID).Delete(&catalog.Product{}).Error
}

// SaveBatch inserts multiple products with their parameter rows
func (r *GormProductRepository) SaveBatch(ctx context.Context, products []*catalog.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(products, 100).Error
}

// CountByShop counts products owned by a shop
func (r *GormProductRepository) CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("shop_id = ?", shopID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
