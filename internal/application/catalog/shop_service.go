package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/identity"
	"github.com/retailnet/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ShopService handles shop browsing and the provider's order-acceptance
// toggle
type ShopService struct {
	shopRepo       catalog.ShopRepository
	providerRepo   identity.ProviderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewShopService creates a new ShopService
func NewShopService(shopRepo catalog.ShopRepository, providerRepo identity.ProviderRepository, logger *zap.Logger) *ShopService {
	return &ShopService{
		shopRepo:     shopRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for shop state changes
func (s *ShopService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ListOpen returns shops currently accepting orders
func (s *ShopService) ListOpen(ctx context.Context, filter shared.Filter) ([]ShopResponse, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["accepting_orders"] = true

	shops, err := s.shopRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ShopResponse, 0, len(shops))
	for i := range shops {
		responses = append(responses, ToShopResponse(&shops[i]))
	}
	return responses, nil
}

// GetForProvider returns the shop the provider account manages
func (s *ShopService) GetForProvider(ctx context.Context, userID uuid.UUID) (*ShopResponse, error) {
	provider, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.ErrForbidden.Code, "Account has no shop attached")
		}
		return nil, err
	}

	shop, err := s.shopRepo.FindByID(ctx, provider.ShopID)
	if err != nil {
		return nil, err
	}

	response := ToShopResponse(shop)
	return &response, nil
}

// SetAcceptingOrders toggles order acceptance for the provider's own shop.
// Orders already confirmed are unaffected; the gate applies at confirmation
// time only.
func (s *ShopService) SetAcceptingOrders(ctx context.Context, userID uuid.UUID, accepting bool) (*ShopResponse, error) {
	provider, err := s.providerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.ErrForbidden.Code, "Account has no shop attached")
		}
		return nil, err
	}

	shop, err := s.shopRepo.FindByID(ctx, provider.ShopID)
	if err != nil {
		return nil, err
	}

	shop.SetAcceptingOrders(accepting)
	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, err
	}

	events := shop.GetDomainEvents()
	shop.ClearDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish shop state events", zap.Error(err))
		}
	}

	response := ToShopResponse(shop)
	return &response, nil
}
