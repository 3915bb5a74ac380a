package notification

import (
	"context"
	"fmt"

	"github.com/retailnet/backend/internal/application/confirm"
	"github.com/retailnet/backend/internal/domain/identity"
	"github.com/retailnet/backend/internal/domain/order"
	"github.com/retailnet/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderSubmittedHandler handles OrderSubmittedEvent: it issues the order
// confirmation token carrying the submitted delivery address and mails the
// confirmation link to the customer.
type OrderSubmittedHandler struct {
	tokens   *confirm.TokenService
	userRepo identity.UserRepository
	notifier Notifier
	baseURL  string
	logger   *zap.Logger
}

// NewOrderSubmittedHandler creates a new handler for order submitted events
func NewOrderSubmittedHandler(tokens *confirm.TokenService, userRepo identity.UserRepository, notifier Notifier, baseURL string, logger *zap.Logger) *OrderSubmittedHandler {
	return &OrderSubmittedHandler{
		tokens:   tokens,
		userRepo: userRepo,
		notifier: notifier,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderSubmittedHandler) EventTypes() []string {
	return []string{order.EventTypeOrderSubmitted}
}

// Handle processes an OrderSubmittedEvent
func (h *OrderSubmittedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	submitted, ok := event.(*order.OrderSubmittedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", order.EventTypeOrderSubmitted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventTypeOrderSubmitted, event.EventType())
	}

	customer, err := h.userRepo.FindByID(ctx, submitted.CustomerID)
	if err != nil {
		h.logger.Error("failed to resolve order customer",
			zap.String("order_id", submitted.OrderID.String()),
			zap.String("customer_id", submitted.CustomerID.String()),
			zap.Error(err),
		)
		return err
	}

	token, err := h.tokens.IssueOrderToken(ctx, submitted.OrderID, submitted.PendingAddress)
	if err != nil {
		h.logger.Error("failed to issue order confirmation token",
			zap.String("order_id", submitted.OrderID.String()),
			zap.Error(err),
		)
		return err
	}

	msg := Message{
		To:      customer.Email,
		Subject: "Confirm your order",
		Body: fmt.Sprintf("Follow the link to confirm your order: %s/api/v1/orders/confirm?key=%s",
			h.baseURL, token.Key),
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := h.notifier.Send(sendCtx, msg); err != nil {
		h.logger.Error("failed to send order confirmation email",
			zap.String("email", customer.Email),
			zap.String("order_id", submitted.OrderID.String()),
			zap.Error(err),
		)
		return nil
	}

	h.logger.Info("order confirmation email sent",
		zap.String("email", customer.Email),
		zap.String("order_id", submitted.OrderID.String()),
	)
	return nil
}

var _ shared.EventHandler = (*OrderSubmittedHandler)(nil)
