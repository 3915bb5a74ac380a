package catalog

import (
	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeShop = "Shop"

// Event type constants
const (
	EventTypeShopCreated      = "ShopCreated"
	EventTypeShopStateChanged = "ShopStateChanged"
	EventTypeCatalogImported  = "CatalogImported"
)

// ShopCreatedEvent is published when a new shop is created
type ShopCreatedEvent struct {
	shared.BaseDomainEvent
	ShopID uuid.UUID `json:"shop_id"`
	Name   string    `json:"name"`
}

// NewShopCreatedEvent creates a new ShopCreatedEvent
func NewShopCreatedEvent(shop *Shop) *ShopCreatedEvent {
	return &ShopCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopCreated, AggregateTypeShop, shop.ID),
		ShopID:          shop.ID,
		Name:            shop.Name,
	}
}

// ShopStateChangedEvent is published when a shop starts or stops accepting orders
type ShopStateChangedEvent struct {
	shared.BaseDomainEvent
	ShopID          uuid.UUID `json:"shop_id"`
	Name            string    `json:"name"`
	AcceptingOrders bool      `json:"accepting_orders"`
}

// NewShopStateChangedEvent creates a new ShopStateChangedEvent
func NewShopStateChangedEvent(shop *Shop) *ShopStateChangedEvent {
	return &ShopStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopStateChanged, AggregateTypeShop, shop.ID),
		ShopID:          shop.ID,
		Name:            shop.Name,
		AcceptingOrders: shop.AcceptingOrders,
	}
}

// CatalogImportedEvent is published after a catalog feed has been
// successfully reconciled into the store for a shop
type CatalogImportedEvent struct {
	shared.BaseDomainEvent
	ShopID       uuid.UUID `json:"shop_id"`
	ShopName     string    `json:"shop_name"`
	ProductCount int       `json:"product_count"`
}

// NewCatalogImportedEvent creates a new CatalogImportedEvent
func NewCatalogImportedEvent(shop *Shop, productCount int) *CatalogImportedEvent {
	return &CatalogImportedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogImported, AggregateTypeShop, shop.ID),
		ShopID:          shop.ID,
		ShopName:        shop.Name,
		ProductCount:    productCount,
	}
}
