package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/shared"
	"github.com/retailnet/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a single catalog entry published by a shop.
// Products are replaced wholesale on every catalog import, so the aggregate
// carries no mutators beyond construction: identity for reconciliation is the
// (shop, external_id) pair, not the generated row id.
type Product struct {
	shared.BaseEntity
	Name       string          `gorm:"type:varchar(200);not null"`
	Model      string          `gorm:"type:varchar(100);not null"`
	ExternalID int             `gorm:"not null;uniqueIndex:idx_product_shop_external,priority:2"`
	Price      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PriceRRC   decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Recommended retail price
	Quantity   int             `gorm:"not null"`
	CategoryID int             `gorm:"not null;index"`
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_shop_external,priority:1"`

	Parameters []ProductParameter `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product owned by a shop
func NewProduct(shopID uuid.UUID, externalID int, name, model string, categoryID int, price, priceRRC decimal.Decimal, quantity int) (*Product, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External id must be positive")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if categoryID <= 0 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_ID", "Category id must be positive")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if priceRRC.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Recommended retail price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Model:      model,
		ExternalID: externalID,
		Price:      price,
		PriceRRC:   priceRRC,
		Quantity:   quantity,
		CategoryID: categoryID,
		ShopID:     shopID,
	}, nil
}

// AddParameter appends a parameter value to the product.
// Rows are created fresh on every import rather than upserted.
func (p *Product) AddParameter(parameterID uuid.UUID, value string) error {
	if parameterID == uuid.Nil {
		return shared.NewDomainError("INVALID_PARAMETER", "Parameter ID cannot be empty")
	}
	if len(value) > 200 {
		return shared.NewDomainError("INVALID_VALUE", "Parameter value cannot exceed 200 characters")
	}

	p.Parameters = append(p.Parameters, ProductParameter{
		ID:          uuid.New(),
		ProductID:   p.ID,
		ParameterID: parameterID,
		Value:       value,
	})

	return nil
}

// PriceMoney returns the current price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyRUB(p.Price)
}

// InStock returns true if the product has stock available
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// Parameter is a globally unique characteristic name, deduplicated across
// the whole system rather than per shop or per product
type Parameter struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Parameter) TableName() string {
	return "parameters"
}

// NewParameter creates a new parameter
func NewParameter(name string) (*Parameter, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Parameter name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Parameter name cannot exceed 200 characters")
	}

	return &Parameter{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}

// ProductParameter joins a product to a parameter with a concrete value
type ProductParameter struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ParameterID uuid.UUID `gorm:"type:uuid;not null"`
	Value       string    `gorm:"type:varchar(200);not null"`

	Parameter *Parameter `gorm:"foreignKey:ParameterID"`
}

// TableName returns the table name for GORM
func (ProductParameter) TableName() string {
	return "product_parameters"
}
