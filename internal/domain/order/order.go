package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/shared"
	"github.com/retailnet/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusBasket    OrderStatus = "basket"
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusAssembled OrderStatus = "assembled"
	OrderStatusSent      OrderStatus = "sent"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusBasket, OrderStatusNew, OrderStatusConfirmed, OrderStatusAssembled,
		OrderStatusSent, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Forward transitions are strictly one-directional; cancellation is reachable
// from every non-terminal state past the basket.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusBasket:
		return target == OrderStatusNew
	case OrderStatusNew:
		return target == OrderStatusConfirmed || target == OrderStatusCanceled
	case OrderStatusConfirmed:
		return target == OrderStatusAssembled || target == OrderStatusCanceled
	case OrderStatusAssembled:
		return target == OrderStatusSent || target == OrderStatusCanceled
	case OrderStatusSent:
		return target == OrderStatusDelivered || target == OrderStatusCanceled
	case OrderStatusDelivered, OrderStatusCanceled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// OrderPosition represents a line item in an order.
// Each order holds at most one position per product; re-adding a product
// replaces the existing row instead of accumulating a second one.
type OrderPosition struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_position_order_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_position_order_product,priority:2"`
	Amount    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderPosition) TableName() string {
	return "order_positions"
}

// NewOrderPosition creates a new order position
func NewOrderPosition(orderID, productID uuid.UUID, amount int) (*OrderPosition, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.ErrInvalidAmount
	}

	now := time.Now()
	return &OrderPosition{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Order represents a customer order aggregate root.
// An order starts life as the customer's basket and moves through the
// confirmation workflow once submitted. At most one order per customer is in
// basket status at any time; that lookup is enforced by the repository.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;index"`
	Address    *string     `gorm:"type:varchar(500)"`

	Positions []OrderPosition `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewBasket creates a new order in basket status for a customer
func NewBasket(customerID uuid.UUID) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Status:            OrderStatusBasket,
		Positions:         make([]OrderPosition, 0),
	}, nil
}

// UpsertPosition replaces the position for a product, or removes it when
// amount is zero or negative. Returns true when a position remains after the
// call. Only allowed while the order is still a basket.
func (o *Order) UpsertPosition(productID uuid.UUID, amount int) (bool, error) {
	if o.Status != OrderStatusBasket {
		return false, shared.NewDomainError("INVALID_STATE", "Cannot modify positions of a submitted order")
	}
	if productID == uuid.Nil {
		return false, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	if amount <= 0 {
		o.removePosition(productID)
		o.UpdatedAt = time.Now()
		return false, nil
	}

	o.removePosition(productID)
	position, err := NewOrderPosition(o.ID, productID, amount)
	if err != nil {
		return false, err
	}

	o.Positions = append(o.Positions, *position)
	o.UpdatedAt = time.Now()

	return true, nil
}

// removePosition drops the position for a product if present
func (o *Order) removePosition(productID uuid.UUID) {
	for idx, position := range o.Positions {
		if position.ProductID == productID {
			o.Positions = append(o.Positions[:idx], o.Positions[idx+1:]...)
			return
		}
	}
}

// GetPosition returns the position for a product, or nil
func (o *Order) GetPosition(productID uuid.UUID) *OrderPosition {
	for idx := range o.Positions {
		if o.Positions[idx].ProductID == productID {
			return &o.Positions[idx]
		}
	}
	return nil
}

// Submit transitions the basket to new status. The delivery address is not
// stored on the order yet; it travels on the confirmation token and becomes
// authoritative only when the token is redeemed.
func (o *Order) Submit(address valueobject.Address) error {
	if !o.Status.CanTransitionTo(OrderStatusNew) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit order in %s status", o.Status))
	}
	if len(o.Positions) == 0 {
		return shared.NewDomainError("EMPTY_BASKET", "Cannot submit an order without positions")
	}
	if address.IsEmpty() {
		return shared.NewDomainError("INVALID_ADDRESS", "Delivery address is required")
	}

	o.Status = OrderStatusNew
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderSubmittedEvent(o, address))

	return nil
}

// Confirm transitions the order from new to confirmed and applies the
// address carried by the redeemed confirmation token
func (o *Order) Confirm(address string) error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if address == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Delivery address is required")
	}

	o.Status = OrderStatusConfirmed
	o.Address = &address
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderConfirmedEvent(o))

	return nil
}

// SetStatus applies an operator-driven transition (assembled, sent,
// delivered, canceled) validated against the transition table
func (o *Order) SetStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if target == OrderStatusNew || target == OrderStatusConfirmed || target == OrderStatusBasket {
		return shared.NewDomainError("INVALID_STATE", "Status is managed by the confirmation workflow")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	previous := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// IsBasket returns true while the order is still the customer's cart
func (o *Order) IsBasket() bool {
	return o.Status == OrderStatusBasket
}

// IsTerminal returns true if the order reached a final state
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// PositionCount returns the number of positions in the order
func (o *Order) PositionCount() int {
	return len(o.Positions)
}
