package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/order"
	"github.com/retailnet/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, positions included
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Positions").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindBasket finds the customer's current basket-status order
func (r *GormOrderRepository) FindBasket(ctx context.Context, customerID uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Positions").
		Where("customer_id = ? AND status = ?", customerID, order.OrderStatusBasket).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByCustomer finds the customer's orders excluding the basket
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Positions").
		Where("customer_id = ? AND status <> ?", customerID, order.OrderStatusBasket)

	var orders []order.Order
	if err := applyPagination(query, filter).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByShop finds non-basket orders containing at least one position
// whose product belongs to the shop
func (r *GormOrderRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Positions").
		Distinct("orders.*").
		Joins("JOIN order_positions ON order_positions.order_id = orders.id").
		Joins("JOIN products ON products.id = order_positions.product_id").
		Where("products.shop_id = ?", shopID).
		Where("orders.status <> ?", order.OrderStatusBasket)

	// Joined tables carry created_at too, qualify the default ordering.
	if filter.OrderBy == "created_at" {
		filter.OrderBy = "orders.created_at"
	}

	var orders []order.Order
	if err := applyPagination(query, filter).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its positions
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(o).Error
}

// ReplacePosition writes a single position, updating the amount when a row
// for the (order, product) pair already exists
func (r *GormOrderRepository) ReplacePosition(ctx context.Context, position *order.OrderPosition) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(position).Error
}

// DeletePosition removes the position for a product, if any
func (r *GormOrderRepository) DeletePosition(ctx context.Context, orderID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Delete(&order.OrderPosition{}).Error
}

// Delete removes an order and its positions
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Delete(&order.OrderPosition{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&order.Order{}, "id = ?", id).Error
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)
