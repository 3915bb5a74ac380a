package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/order"
	"github.com/retailnet/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SubmitOrderRequest carries the delivery address proposed at checkout
type SubmitOrderRequest struct {
	City   string `json:"city" binding:"required,max=100"`
	Street string `json:"street" binding:"required,max=200"`
	House  string `json:"house" binding:"required,max=50"`
	Phone  string `json:"phone" binding:"max=50"`
}

// UpsertPositionRequest sets the amount for a product in the basket.
// A zero amount removes the position.
type UpsertPositionRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Amount    int       `json:"amount" binding:"min=0"`
}

// SetStatusRequest moves an order to an operator-controlled status
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PositionResponse is a priced order line in API responses.
// Prices reflect the product's current catalog price, not the price at the
// moment the position was added.
type PositionResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ShopName    string    `json:"shop_name,omitempty"`
	Amount      int       `json:"amount"`
	Price       string    `json:"price"`
	Subtotal    string    `json:"subtotal"`
}

// OrderResponse is an order in API responses
type OrderResponse struct {
	ID        uuid.UUID          `json:"id"`
	Status    string             `json:"status"`
	Address   string             `json:"address,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	Total     string             `json:"total"`
	Positions []PositionResponse `json:"positions"`
}

// priceOrder builds the priced view of an order from the current catalog
// state. Positions whose product vanished from the catalog (a full refresh
// removed it) are listed with a zero price.
func priceOrder(o *order.Order, productsByID map[uuid.UUID]catalog.Product, shopNames map[uuid.UUID]string) OrderResponse {
	positions := make([]PositionResponse, 0, len(o.Positions))
	total := valueobject.ZeroRUB()

	for _, position := range o.Positions {
		price := decimal.Zero
		name := ""
		shopName := ""
		if product, ok := productsByID[position.ProductID]; ok {
			price = product.Price
			name = product.Name
			shopName = shopNames[product.ShopID]
		}

		subtotal := price.Mul(decimal.NewFromInt(int64(position.Amount)))
		total = total.MustAdd(valueobject.NewMoneyRUB(subtotal))

		positions = append(positions, PositionResponse{
			ProductID:   position.ProductID,
			ProductName: name,
			ShopName:    shopName,
			Amount:      position.Amount,
			Price:       valueobject.NewMoneyRUB(price).String(),
			Subtotal:    valueobject.NewMoneyRUB(subtotal).String(),
		})
	}

	address := ""
	if o.Address != nil {
		address = *o.Address
	}

	return OrderResponse{
		ID:        o.ID,
		Status:    o.Status.String(),
		Address:   address,
		CreatedAt: o.CreatedAt,
		Total:     total.String(),
		Positions: positions,
	}
}

// positionProductIDs collects the product ids referenced by an order
func positionProductIDs(orders ...*order.Order) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, o := range orders {
		for _, position := range o.Positions {
			if !seen[position.ProductID] {
				seen[position.ProductID] = true
				ids = append(ids, position.ProductID)
			}
		}
	}
	return ids
}
