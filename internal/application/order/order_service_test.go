package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/confirm"
	"github.com/retailnet/backend/internal/domain/order"
	"github.com/retailnet/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type orderFixture struct {
	service   *OrderService
	baskets   *BasketService
	orders    *fakeOrderRepo
	catalog   *fakeCatalog
	shops     *fakeShopRepo
	tokens    *fakeOrderTokenRepo
	published *capturingPublisher
}

func newOrderFixture() *orderFixture {
	orders := newFakeOrderRepo()
	cat := newFakeCatalog()
	shops := &fakeShopRepo{catalog: cat}
	tokens := newFakeOrderTokenRepo()
	published := &capturingPublisher{}

	scope := NewNoOpTransactionScope(orders, cat, shops, tokens)
	service := NewOrderService(scope, orders, cat, shops, zap.NewNop())
	service.SetEventPublisher(published)

	return &orderFixture{
		service:   service,
		baskets:   NewBasketService(orders, cat, shops),
		orders:    orders,
		catalog:   cat,
		shops:     shops,
		tokens:    tokens,
		published: published,
	}
}

func (f *orderFixture) seedProduct(t *testing.T, shopName string, price int64) *catalog.Product {
	t.Helper()
	shop, err := f.shops.FindByName(context.Background(), shopName)
	if err != nil {
		shop, err = catalog.NewShop(shopName)
		require.NoError(t, err)
		f.catalog.shops[shop.ID] = shop
	}

	product, err := catalog.NewProduct(shop.ID, len(f.catalog.products)+1, "Product", "m", 1,
		decimal.NewFromInt(price), decimal.NewFromInt(price), 10)
	require.NoError(t, err)
	f.catalog.products[product.ID] = product
	f.orders.productShops[product.ID] = shop.ID
	return product
}

// submitOrder drives a basket through submission and returns the order id
func (f *orderFixture) submitOrder(t *testing.T, customerID uuid.UUID, productIDs ...uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	for _, productID := range productIDs {
		_, err := f.baskets.UpsertPosition(ctx, customerID, UpsertPositionRequest{ProductID: productID, Amount: 1})
		require.NoError(t, err)
	}
	response, err := f.service.Submit(ctx, customerID, SubmitOrderRequest{
		City: "Moscow", Street: "Tverskaya", House: "7",
	})
	require.NoError(t, err)
	return response.ID
}

// issueToken plants a confirmation token for an order
func (f *orderFixture) issueToken(t *testing.T, orderID uuid.UUID, key string) {
	t.Helper()
	token, err := confirm.NewOrderToken(orderID, key, "Moscow, Tverskaya, 7")
	require.NoError(t, err)
	require.NoError(t, f.tokens.Save(context.Background(), token))
}

const tokenKey = "f0e1d2c3b4a5968778695a4b3c2d1e0f"

func TestOrderSubmitService(t *testing.T) {
	ctx := context.Background()

	t.Run("submits the basket and publishes the event", func(t *testing.T) {
		f := newOrderFixture()
		customerID := uuid.New()
		product := f.seedProduct(t, "X", 500)

		orderID := f.submitOrder(t, customerID, product.ID)

		stored, err := f.orders.FindByID(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, order.OrderStatusNew, stored.Status)
		assert.Nil(t, stored.Address)

		require.Len(t, f.published.events, 1)
		event, ok := f.published.events[0].(*order.OrderSubmittedEvent)
		require.True(t, ok)
		assert.Equal(t, orderID, event.OrderID)
		assert.Contains(t, event.PendingAddress, "Moscow")
	})

	t.Run("fails without an active basket", func(t *testing.T) {
		f := newOrderFixture()

		_, err := f.service.Submit(ctx, uuid.New(), SubmitOrderRequest{City: "Moscow", Street: "Tverskaya", House: "7"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No active basket")
	})

	t.Run("fails on an empty basket", func(t *testing.T) {
		f := newOrderFixture()
		customerID := uuid.New()
		_, err := f.baskets.GetOrCreateActiveBasket(ctx, customerID)
		require.NoError(t, err)

		_, err = f.service.Submit(ctx, customerID, SubmitOrderRequest{City: "Moscow", Street: "Tverskaya", House: "7"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "without positions")
	})

	t.Run("fails with an incomplete address", func(t *testing.T) {
		f := newOrderFixture()
		customerID := uuid.New()
		product := f.seedProduct(t, "X", 500)
		_, err := f.baskets.UpsertPosition(ctx, customerID, UpsertPositionRequest{ProductID: product.ID, Amount: 1})
		require.NoError(t, err)

		_, err = f.service.Submit(ctx, customerID, SubmitOrderRequest{City: "Moscow"})
		require.Error(t, err)
	})
}

func TestConfirmByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms the order and applies the token address", func(t *testing.T) {
		f := newOrderFixture()
		customerID := uuid.New()
		product := f.seedProduct(t, "X", 500)
		orderID := f.submitOrder(t, customerID, product.ID)
		f.issueToken(t, orderID, tokenKey)

		response, err := f.service.ConfirmByToken(ctx, tokenKey)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", response.Status)
		assert.Equal(t, "Moscow, Tverskaya, 7", response.Address)
	})

	t.Run("second redemption fails with the generic token error", func(t *testing.T) {
		f := newOrderFixture()
		customerID := uuid.New()
		product := f.seedProduct(t, "X", 500)
		orderID := f.submitOrder(t, customerID, product.ID)
		f.issueToken(t, orderID, tokenKey)

		_, err := f.service.ConfirmByToken(ctx, tokenKey)
		require.NoError(t, err)

		_, err = f.service.ConfirmByToken(ctx, tokenKey)
		require.ErrorIs(t, err, shared.ErrInvalidToken)
	})

	t.Run("unknown key fails with the generic token error", func(t *testing.T) {
		f := newOrderFixture()

		_, err := f.service.ConfirmByToken(ctx, "0000000000000000")
		require.ErrorIs(t, err, shared.ErrInvalidToken)
	})

	t.Run("fails when a shop stopped accepting orders", func(t *testing.T) {
		f := newOrderFixture()
		customerID := uuid.New()
		product := f.seedProduct(t, "X", 500)
		orderID := f.submitOrder(t, customerID, product.ID)
		f.issueToken(t, orderID, tokenKey)

		shop := f.catalog.shops[product.ShopID]
		shop.SetAcceptingOrders(false)

		_, err := f.service.ConfirmByToken(ctx, tokenKey)
		require.ErrorIs(t, err, shared.ErrShopNotAcceptingOrders)

		// Token survives the failed redemption
		_, err = f.tokens.FindByKey(ctx, tokenKey)
		require.NoError(t, err)
	})
}

func TestSetStatusService(t *testing.T) {
	ctx := context.Background()

	confirmedOrder := func(t *testing.T, f *orderFixture) (uuid.UUID, *catalog.Product) {
		t.Helper()
		customerID := uuid.New()
		product := f.seedProduct(t, "X", 500)
		orderID := f.submitOrder(t, customerID, product.ID)
		f.issueToken(t, orderID, tokenKey)
		_, err := f.service.ConfirmByToken(ctx, tokenKey)
		require.NoError(t, err)
		return orderID, product
	}

	t.Run("operator advances the fulfillment chain", func(t *testing.T) {
		f := newOrderFixture()
		orderID, product := confirmedOrder(t, f)

		response, err := f.service.SetStatus(ctx, product.ShopID, orderID, SetStatusRequest{Status: "assembled"})
		require.NoError(t, err)
		assert.Equal(t, "assembled", response.Status)

		response, err = f.service.SetStatus(ctx, product.ShopID, orderID, SetStatusRequest{Status: "sent"})
		require.NoError(t, err)
		assert.Equal(t, "sent", response.Status)
	})

	t.Run("rejects operators from other shops", func(t *testing.T) {
		f := newOrderFixture()
		orderID, _ := confirmedOrder(t, f)
		other := f.seedProduct(t, "Other", 100)

		_, err := f.service.SetStatus(ctx, other.ShopID, orderID, SetStatusRequest{Status: "assembled"})
		require.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("rejects invalid target status", func(t *testing.T) {
		f := newOrderFixture()
		orderID, product := confirmedOrder(t, f)

		_, err := f.service.SetStatus(ctx, product.ShopID, orderID, SetStatusRequest{Status: "shipped"})
		require.Error(t, err)
	})
}

func TestOrderListings(t *testing.T) {
	ctx := context.Background()

	t.Run("customer listing excludes the basket", func(t *testing.T) {
		f := newOrderFixture()
		customerID := uuid.New()
		product := f.seedProduct(t, "X", 500)
		f.submitOrder(t, customerID, product.ID)

		// A fresh basket after submission
		_, err := f.baskets.UpsertPosition(ctx, customerID, UpsertPositionRequest{ProductID: product.ID, Amount: 1})
		require.NoError(t, err)

		orders, err := f.service.ListForCustomer(ctx, customerID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "new", orders[0].Status)
		assert.Equal(t, "RUB 500.00", orders[0].Total)
	})

	t.Run("shop listing returns only orders touching the shop", func(t *testing.T) {
		f := newOrderFixture()
		productX := f.seedProduct(t, "X", 500)
		productY := f.seedProduct(t, "Y", 300)

		f.submitOrder(t, uuid.New(), productX.ID)
		f.submitOrder(t, uuid.New(), productY.ID)

		ordersX, err := f.service.ListForShop(ctx, productX.ShopID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, ordersX, 1)
		require.Len(t, ordersX[0].Positions, 1)
		assert.Equal(t, productX.ID, ordersX[0].Positions[0].ProductID)
	})
}
