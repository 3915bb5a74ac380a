package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/shared"
	"github.com/retailnet/backend/internal/domain/shared/valueobject"
)

// Customer is the buyer profile, one-to-one with a user account.
// The flat contact fields double as the default delivery address offered
// at checkout.
type Customer struct {
	shared.BaseEntity
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	City   string    `gorm:"type:varchar(100)"`
	Street string    `gorm:"type:varchar(200)"`
	House  string    `gorm:"type:varchar(50)"`
	Phone  string    `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer profile for a user
func NewCustomer(userID uuid.UUID) (*Customer, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}, nil
}

// SetContact updates the customer's contact and delivery details
func (c *Customer) SetContact(city, street, house, phone string) error {
	if len(city) > 100 || len(street) > 200 || len(house) > 50 || len(phone) > 50 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact field exceeds maximum length")
	}

	c.City = city
	c.Street = street
	c.House = house
	c.Phone = phone
	c.UpdatedAt = time.Now()

	return nil
}

// DefaultAddress returns the profile contact details as a delivery address.
// Returns an empty address when the profile is incomplete.
func (c *Customer) DefaultAddress() valueobject.Address {
	address, err := valueobject.NewAddress(c.City, c.Street, c.House, c.Phone)
	if err != nil {
		return valueobject.EmptyAddress()
	}
	return address
}
