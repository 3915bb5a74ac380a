package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/order"
	"github.com/retailnet/backend/internal/domain/shared"
	"github.com/retailnet/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// OrderService drives the order lifecycle past the basket: submission,
// token-based confirmation and operator status transitions. State changes
// run inside one transaction; events publish after the commit so
// notification failures never roll back an order.
type OrderService struct {
	scope          TransactionScope
	orderRepo      order.OrderRepository
	productRepo    catalog.ProductRepository
	shopRepo       catalog.ShopRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	scope TransactionScope,
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	shopRepo catalog.ShopRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		scope:       scope,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		shopRepo:    shopRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for post-commit notifications
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Submit turns the customer's basket into a new order awaiting confirmation.
// The address is not written to the order; it rides on the OrderSubmitted
// event and ends up in the confirmation token.
func (s *OrderService) Submit(ctx context.Context, customerID uuid.UUID, req SubmitOrderRequest) (*OrderResponse, error) {
	address, err := valueobject.NewAddress(req.City, req.Street, req.House, req.Phone)
	if err != nil {
		return nil, err
	}

	var (
		submitted *order.Order
		events    []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		basket, txErr := repos.OrderRepo().FindBasket(ctx, customerID)
		if txErr != nil {
			if errors.Is(txErr, shared.ErrNotFound) {
				return shared.NewDomainError(shared.ErrInvalidState.Code, "No active basket to submit")
			}
			return txErr
		}

		if txErr := basket.Submit(address); txErr != nil {
			return txErr
		}
		if txErr := repos.OrderRepo().Save(ctx, basket); txErr != nil {
			return txErr
		}

		submitted = basket
		events = basket.GetDomainEvents()
		basket.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return s.pricedResponse(ctx, submitted)
}

// ConfirmByToken redeems an order confirmation token. The lookup, the
// delete and the state transition share one transaction; the rows-affected
// check on the delete guarantees a concurrent double-redeem sees at most
// one success. All failures surface as the generic invalid-token error.
func (s *OrderService) ConfirmByToken(ctx context.Context, key string) (*OrderResponse, error) {
	var (
		confirmed *order.Order
		events    []shared.DomainEvent
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		token, txErr := repos.OrderTokenRepo().FindByKey(ctx, key)
		if txErr != nil {
			if errors.Is(txErr, shared.ErrNotFound) {
				return shared.ErrInvalidToken
			}
			return txErr
		}

		o, txErr := repos.OrderRepo().FindByID(ctx, token.OrderID)
		if txErr != nil {
			if errors.Is(txErr, shared.ErrNotFound) {
				return shared.ErrInvalidToken
			}
			return txErr
		}

		if txErr := s.checkShopsAccepting(ctx, repos, o); txErr != nil {
			return txErr
		}

		if txErr := o.Confirm(token.Address); txErr != nil {
			return txErr
		}

		deleted, txErr := repos.OrderTokenRepo().DeleteByKey(ctx, key)
		if txErr != nil {
			return txErr
		}
		if !deleted {
			return shared.ErrInvalidToken
		}

		if txErr := repos.OrderRepo().Save(ctx, o); txErr != nil {
			return txErr
		}

		confirmed = o
		events = o.GetDomainEvents()
		o.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return s.pricedResponse(ctx, confirmed)
}

// SetStatus applies an operator transition. When operatorShopID is set the
// order must contain at least one position from that shop.
func (s *OrderService) SetStatus(ctx context.Context, operatorShopID, orderID uuid.UUID, req SetStatusRequest) (*OrderResponse, error) {
	target := order.OrderStatus(req.Status)

	var (
		updated *order.Order
		events  []shared.DomainEvent
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, txErr := repos.OrderRepo().FindByID(ctx, orderID)
		if txErr != nil {
			return txErr
		}

		if operatorShopID != uuid.Nil {
			owns, txErr := s.orderContainsShop(ctx, repos, o, operatorShopID)
			if txErr != nil {
				return txErr
			}
			if !owns {
				return shared.ErrForbidden
			}
		}

		if txErr := o.SetStatus(target); txErr != nil {
			return txErr
		}
		if txErr := repos.OrderRepo().Save(ctx, o); txErr != nil {
			return txErr
		}

		updated = o
		events = o.GetDomainEvents()
		o.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	return s.pricedResponse(ctx, updated)
}

// ListForCustomer returns the customer's submitted orders, baskets excluded
func (s *OrderService) ListForCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	return s.pricedResponses(ctx, orders)
}

// ListForShop returns submitted orders containing at least one position
// whose product belongs to the shop
func (s *OrderService) ListForShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByShop(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}
	return s.pricedResponses(ctx, orders)
}

// GetForCustomer returns one of the customer's orders with pricing
func (s *OrderService) GetForCustomer(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, shared.ErrForbidden
	}
	return s.pricedResponse(ctx, o)
}

// checkShopsAccepting verifies every position's product belongs to a shop
// that still accepts orders
func (s *OrderService) checkShopsAccepting(ctx context.Context, repos TransactionalRepositories, o *order.Order) error {
	products, err := repos.ProductRepo().FindByIDs(ctx, positionProductIDs(o))
	if err != nil {
		return err
	}

	checked := make(map[uuid.UUID]bool)
	for _, product := range products {
		if checked[product.ShopID] {
			continue
		}
		checked[product.ShopID] = true

		shop, err := repos.ShopRepo().FindByID(ctx, product.ShopID)
		if err != nil {
			return err
		}
		if !shop.AcceptingOrders {
			return shared.ErrShopNotAcceptingOrders
		}
	}
	return nil
}

// orderContainsShop reports whether the order has a position from the shop
func (s *OrderService) orderContainsShop(ctx context.Context, repos TransactionalRepositories, o *order.Order, shopID uuid.UUID) (bool, error) {
	products, err := repos.ProductRepo().FindByIDs(ctx, positionProductIDs(o))
	if err != nil {
		return false, err
	}
	for _, product := range products {
		if product.ShopID == shopID {
			return true, nil
		}
	}
	return false, nil
}

// publish delivers domain events after the transaction has committed
func (s *OrderService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events", zap.Error(err))
	}
}

// pricedResponse builds the priced view of one order
func (s *OrderService) pricedResponse(ctx context.Context, o *order.Order) (*OrderResponse, error) {
	products, err := s.productRepo.FindByIDs(ctx, positionProductIDs(o))
	if err != nil {
		return nil, err
	}
	shopNames, err := shopNamesFor(ctx, s.shopRepo, products)
	if err != nil {
		return nil, err
	}
	response := priceOrder(o, productMap(products), shopNames)
	return &response, nil
}

// pricedResponses builds priced views for a list of orders
func (s *OrderService) pricedResponses(ctx context.Context, orders []order.Order) ([]OrderResponse, error) {
	pointers := make([]*order.Order, len(orders))
	for idx := range orders {
		pointers[idx] = &orders[idx]
	}

	products, err := s.productRepo.FindByIDs(ctx, positionProductIDs(pointers...))
	if err != nil {
		return nil, err
	}
	shopNames, err := shopNamesFor(ctx, s.shopRepo, products)
	if err != nil {
		return nil, err
	}

	byID := productMap(products)
	responses := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, priceOrder(&orders[idx], byID, shopNames))
	}
	return responses, nil
}
