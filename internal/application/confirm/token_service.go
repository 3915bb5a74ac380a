package confirm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/confirm"
	"github.com/retailnet/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenService issues confirmation tokens and purges stale ones.
// Issuance is get-or-create keyed on the subject: re-requesting a
// confirmation link returns the existing token instead of rotating it.
// Redemption lives with the state change it authorizes (order and identity
// services) so it can share the same transaction.
type TokenService struct {
	emailTokens confirm.EmailTokenRepository
	orderTokens confirm.OrderTokenRepository
	keys        confirm.KeyGenerator
	logger      *zap.Logger
}

// NewTokenService creates a new TokenService
func NewTokenService(
	emailTokens confirm.EmailTokenRepository,
	orderTokens confirm.OrderTokenRepository,
	keys confirm.KeyGenerator,
	logger *zap.Logger,
) *TokenService {
	return &TokenService{
		emailTokens: emailTokens,
		orderTokens: orderTokens,
		keys:        keys,
		logger:      logger,
	}
}

// IssueEmailToken returns the user's confirmation token, creating one on
// first request
func (s *TokenService) IssueEmailToken(ctx context.Context, userID uuid.UUID) (*confirm.EmailToken, error) {
	existing, err := s.emailTokens.FindByUser(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	key, err := s.keys.Generate()
	if err != nil {
		return nil, err
	}
	token, err := confirm.NewEmailToken(userID, key)
	if err != nil {
		return nil, err
	}
	if err := s.emailTokens.Save(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// IssueOrderToken returns the order's confirmation token, creating one
// carrying the pending address on first request
func (s *TokenService) IssueOrderToken(ctx context.Context, orderID uuid.UUID, address string) (*confirm.OrderToken, error) {
	existing, err := s.orderTokens.FindByOrder(ctx, orderID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	key, err := s.keys.Generate()
	if err != nil {
		return nil, err
	}
	token, err := confirm.NewOrderToken(orderID, key, address)
	if err != nil {
		return nil, err
	}
	if err := s.orderTokens.Save(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// PurgeOlderThan removes unredeemed tokens created before the cutoff.
// Tokens have no TTL; this is the administrative cleanup path and is not
// scheduled by default.
func (s *TokenService) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	emails, err := s.emailTokens.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	orders, err := s.orderTokens.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return emails, err
	}

	total := emails + orders
	if total > 0 {
		s.logger.Info("purged stale confirmation tokens",
			zap.Int64("email_tokens", emails),
			zap.Int64("order_tokens", orders))
	}
	return total, nil
}
