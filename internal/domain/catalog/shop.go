package catalog

import (
	"net/url"
	"strings"
	"time"

	"github.com/retailnet/backend/internal/domain/shared"
)

// Shop represents a supplier's shop publishing a product catalog
// It is the aggregate root for shop-related operations
type Shop struct {
	shared.BaseAggregateRoot
	Name            string `gorm:"type:varchar(100);not null;uniqueIndex"`
	URL             string `gorm:"type:varchar(500)"`
	AcceptingOrders bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop
func NewShop(name string) (*Shop, error) {
	if err := validateShopName(name); err != nil {
		return nil, err
	}

	shop := &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		AcceptingOrders:   true,
	}

	shop.AddDomainEvent(NewShopCreatedEvent(shop))

	return shop, nil
}

// SetURL sets the shop's feed or storefront URL
func (s *Shop) SetURL(rawURL string) error {
	if rawURL != "" {
		u, err := url.Parse(rawURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return shared.NewDomainError("INVALID_URL", "Shop URL must be a valid absolute URL")
		}
	}

	s.URL = rawURL
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAcceptingOrders toggles whether the shop currently accepts orders
func (s *Shop) SetAcceptingOrders(accepting bool) {
	if s.AcceptingOrders == accepting {
		return
	}

	s.AcceptingOrders = accepting
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewShopStateChangedEvent(s))
}

// validateShopName validates the shop name
// The name is the reconciliation key for catalog imports: matching is
// case-sensitive and exact, so only surrounding whitespace is rejected
func validateShopName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	if name != strings.TrimSpace(name) {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot have leading or trailing whitespace")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot exceed 100 characters")
	}
	return nil
}
