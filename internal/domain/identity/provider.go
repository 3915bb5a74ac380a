package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/shared"
)

// Provider is the supplier staff profile, one-to-one with a user account
// and attached to the shop the staff member manages
type Provider struct {
	shared.BaseEntity
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ShopID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Company  string    `gorm:"type:varchar(200)"`
	Position string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Provider) TableName() string {
	return "providers"
}

// NewProvider creates a new provider profile for a user
func NewProvider(userID, shopID uuid.UUID, company, position string) (*Provider, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if len(company) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company cannot exceed 200 characters")
	}
	if len(position) > 100 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position cannot exceed 100 characters")
	}

	return &Provider{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ShopID:     shopID,
		Company:    company,
		Position:   position,
	}, nil
}

// SetPosition updates the provider's job title
func (p *Provider) SetPosition(position string) error {
	if len(position) > 100 {
		return shared.NewDomainError("INVALID_POSITION", "Position cannot exceed 100 characters")
	}

	p.Position = position
	p.UpdatedAt = time.Now()

	return nil
}
