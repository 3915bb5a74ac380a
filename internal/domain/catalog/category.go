package catalog

import (
	"time"

	"github.com/retailnet/backend/internal/domain/shared"
)

// Category represents a product category shared across shops.
// Unlike the other aggregates its identifier is supplied by the catalog
// feeds: the feed's integer id is the reconciliation key, so it is used
// as the primary key directly instead of a generated UUID.
type Category struct {
	ID        int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category with a feed-supplied id
func NewCategory(id int, name string) (*Category, error) {
	if id <= 0 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_ID", "Category id must be positive")
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Category{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename updates the category name. Feeds win name conflicts: when a feed
// references an existing id with a different name, the feed's name is applied.
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if c.Name == name {
		return nil
	}

	c.Name = name
	c.UpdatedAt = time.Now()

	return nil
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
