package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/retailnet/backend/internal/application/confirm"
	"github.com/retailnet/backend/internal/domain/identity"
	"github.com/retailnet/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// sendTimeout bounds a single notifier delivery so a slow SMTP server
// cannot stall the event bus worker
const sendTimeout = 10 * time.Second

// UserRegisteredHandler handles UserRegisteredEvent: it issues the email
// confirmation token for the new account and mails the confirmation link.
// Delivery is best-effort; the registration itself has already committed.
type UserRegisteredHandler struct {
	tokens   *confirm.TokenService
	notifier Notifier
	baseURL  string
	logger   *zap.Logger
}

// NewUserRegisteredHandler creates a new handler for user registered events.
// baseURL is the public root used to build confirmation links.
func NewUserRegisteredHandler(tokens *confirm.TokenService, notifier Notifier, baseURL string, logger *zap.Logger) *UserRegisteredHandler {
	return &UserRegisteredHandler{
		tokens:   tokens,
		notifier: notifier,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *UserRegisteredHandler) EventTypes() []string {
	return []string{identity.EventTypeUserRegistered}
}

// Handle processes a UserRegisteredEvent
func (h *UserRegisteredHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	registered, ok := event.(*identity.UserRegisteredEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", identity.EventTypeUserRegistered),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			identity.EventTypeUserRegistered, event.EventType())
	}

	token, err := h.tokens.IssueEmailToken(ctx, registered.UserID)
	if err != nil {
		h.logger.Error("failed to issue email confirmation token",
			zap.String("user_id", registered.UserID.String()),
			zap.Error(err),
		)
		return err
	}

	msg := Message{
		To:      registered.Email,
		Subject: "Confirm your email",
		Body: fmt.Sprintf("Follow the link to confirm your account: %s/api/v1/auth/confirm?key=%s",
			h.baseURL, token.Key),
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := h.notifier.Send(sendCtx, msg); err != nil {
		h.logger.Error("failed to send confirmation email",
			zap.String("email", registered.Email),
			zap.Error(err),
		)
		// Delivery failure must not fail the event handling; the token is
		// already stored and can be re-sent later.
		return nil
	}

	h.logger.Info("confirmation email sent",
		zap.String("email", registered.Email),
	)
	return nil
}

var _ shared.EventHandler = (*UserRegisteredHandler)(nil)
