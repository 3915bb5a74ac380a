package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/identity"
	"github.com/retailnet/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenIssuer issues authentication tokens for a logged-in account
type TokenIssuer interface {
	// IssueTokens returns an access/refresh pair and the access token TTL
	// in seconds
	IssueTokens(userID uuid.UUID, role identity.Role) (access, refresh string, expiresIn int64, err error)
}

// AuthService handles registration, email confirmation and login.
// Registered accounts stay inactive until the emailed confirmation token is
// redeemed; the confirmation email itself is sent by a notification handler
// after the registration transaction commits.
type AuthService struct {
	scope          TransactionScope
	userRepo       identity.UserRepository
	tokenIssuer    TokenIssuer
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(scope TransactionScope, userRepo identity.UserRepository, tokenIssuer TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		scope:       scope,
		userRepo:    userRepo,
		tokenIssuer: tokenIssuer,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for post-commit notifications
func (s *AuthService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RegisterCustomer creates a buyer account with its customer profile
func (s *AuthService) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*UserResponse, error) {
	var (
		user   *identity.User
		events []shared.DomainEvent
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		newUser, txErr := s.createUser(ctx, repos, req.Email, req.Password, identity.RoleBuyer, req.FirstName, req.LastName)
		if txErr != nil {
			return txErr
		}

		customer, txErr := identity.NewCustomer(newUser.ID)
		if txErr != nil {
			return txErr
		}
		if txErr := customer.SetContact(req.City, req.Street, req.House, req.Phone); txErr != nil {
			return txErr
		}
		if txErr := repos.CustomerRepo().Save(ctx, customer); txErr != nil {
			return txErr
		}

		user = newUser
		events = newUser.GetDomainEvents()
		newUser.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	response := ToUserResponse(user)
	return &response, nil
}

// RegisterProvider creates a provider account, resolving or creating the
// shop the provider manages
func (s *AuthService) RegisterProvider(ctx context.Context, req RegisterProviderRequest) (*UserResponse, error) {
	var (
		user   *identity.User
		events []shared.DomainEvent
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		newUser, txErr := s.createUser(ctx, repos, req.Email, req.Password, identity.RoleProvider, req.FirstName, req.LastName)
		if txErr != nil {
			return txErr
		}

		shop, txErr := s.resolveShop(ctx, repos, req.ShopName)
		if txErr != nil {
			return txErr
		}

		provider, txErr := identity.NewProvider(newUser.ID, shop.ID, req.Company, req.Position)
		if txErr != nil {
			return txErr
		}
		if txErr := repos.ProviderRepo().Save(ctx, provider); txErr != nil {
			return txErr
		}

		user = newUser
		events = newUser.GetDomainEvents()
		newUser.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)

	response := ToUserResponse(user)
	return &response, nil
}

// ConfirmEmail redeems an email confirmation token and activates the
// account. The token delete and the activation share one transaction; the
// rows-affected check keeps redemption single-use. Every failure surfaces
// as the generic invalid-token error.
func (s *AuthService) ConfirmEmail(ctx context.Context, key string) (*UserResponse, error) {
	var user *identity.User
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		token, txErr := repos.EmailTokenRepo().FindByKey(ctx, key)
		if txErr != nil {
			if errors.Is(txErr, shared.ErrNotFound) {
				return shared.ErrInvalidToken
			}
			return txErr
		}

		account, txErr := repos.UserRepo().FindByID(ctx, token.UserID)
		if txErr != nil {
			if errors.Is(txErr, shared.ErrNotFound) {
				return shared.ErrInvalidToken
			}
			return txErr
		}

		if txErr := account.Activate(); txErr != nil {
			return shared.ErrInvalidToken
		}

		deleted, txErr := repos.EmailTokenRepo().DeleteByKey(ctx, key)
		if txErr != nil {
			return txErr
		}
		if !deleted {
			return shared.ErrInvalidToken
		}

		if txErr := repos.UserRepo().Save(ctx, account); txErr != nil {
			return txErr
		}

		user = account
		user.ClearDomainEvents()
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Login authenticates an account and issues a JWT pair.
// Inactive accounts are rejected the same way as bad credentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, shared.ErrUnauthorized
	}
	if !user.Active {
		return nil, shared.ErrUnauthorized
	}

	access, refresh, expiresIn, err := s.tokenIssuer.IssueTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User: ToUserResponse(user),
		Tokens: TokenPairResponse{
			AccessToken:  access,
			RefreshToken: refresh,
			ExpiresIn:    expiresIn,
		},
	}, nil
}

// createUser validates email uniqueness and persists a new inactive account
func (s *AuthService) createUser(ctx context.Context, repos TransactionalRepositories, email, password string, role identity.Role, firstName, lastName string) (*identity.User, error) {
	exists, err := repos.UserRepo().ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "An account with this email already exists")
	}

	user, err := identity.NewUser(email, password, role, firstName, lastName)
	if err != nil {
		return nil, err
	}
	if err := repos.UserRepo().Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// resolveShop gets or creates the provider's shop by name
func (s *AuthService) resolveShop(ctx context.Context, repos TransactionalRepositories, name string) (*catalog.Shop, error) {
	shop, err := repos.ShopRepo().FindByName(ctx, name)
	if err == nil {
		return shop, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	shop, err = catalog.NewShop(name)
	if err != nil {
		return nil, err
	}
	if err := repos.ShopRepo().Save(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// publish delivers domain events after the transaction has committed
func (s *AuthService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish identity events", zap.Error(err))
	}
}
