package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/confirm"
	"github.com/retailnet/backend/internal/domain/identity"
	"github.com/retailnet/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *fakeUserRepo) Save(ctx context.Context, user *identity.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*identity.Customer
}

func (r *fakeCustomerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Customer, error) {
	if customer, ok := r.customers[userID]; ok {
		return customer, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCustomerRepo) Save(ctx context.Context, customer *identity.Customer) error {
	r.customers[customer.UserID] = customer
	return nil
}

type fakeProviderRepo struct {
	providers map[uuid.UUID]*identity.Provider
}

func (r *fakeProviderRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Provider, error) {
	if provider, ok := r.providers[userID]; ok {
		return provider, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProviderRepo) FindByShop(ctx context.Context, shopID uuid.UUID) ([]identity.Provider, error) {
	result := make([]identity.Provider, 0)
	for _, provider := range r.providers {
		if provider.ShopID == shopID {
			result = append(result, *provider)
		}
	}
	return result, nil
}

func (r *fakeProviderRepo) Save(ctx context.Context, provider *identity.Provider) error {
	r.providers[provider.UserID] = provider
	return nil
}

type fakeShopRepo struct {
	shops map[string]*catalog.Shop
}

func (r *fakeShopRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	for _, shop := range r.shops {
		if shop.ID == id {
			return shop, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeShopRepo) FindByName(ctx context.Context, name string) (*catalog.Shop, error) {
	if shop, ok := r.shops[name]; ok {
		return shop, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeShopRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Shop, error) {
	result := make([]catalog.Shop, 0, len(r.shops))
	for _, shop := range r.shops {
		result = append(result, *shop)
	}
	return result, nil
}

func (r *fakeShopRepo) Save(ctx context.Context, shop *catalog.Shop) error {
	r.shops[shop.Name] = shop
	return nil
}

type fakeEmailTokenRepo struct {
	tokens map[string]*confirm.EmailToken
}

func (r *fakeEmailTokenRepo) FindByKey(ctx context.Context, key string) (*confirm.EmailToken, error) {
	if token, ok := r.tokens[key]; ok {
		return token, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeEmailTokenRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*confirm.EmailToken, error) {
	for _, token := range r.tokens {
		if token.UserID == userID {
			return token, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeEmailTokenRepo) Save(ctx context.Context, token *confirm.EmailToken) error {
	r.tokens[token.Key] = token
	return nil
}

func (r *fakeEmailTokenRepo) DeleteByKey(ctx context.Context, key string) (bool, error) {
	if _, ok := r.tokens[key]; !ok {
		return false, nil
	}
	delete(r.tokens, key)
	return true, nil
}

func (r *fakeEmailTokenRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for key, token := range r.tokens {
		if token.CreatedAt.Before(cutoff) {
			delete(r.tokens, key)
			removed++
		}
	}
	return removed, nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) IssueTokens(userID uuid.UUID, role identity.Role) (string, string, int64, error) {
	return "access-" + userID.String(), "refresh-" + userID.String(), 900, nil
}

type authFixture struct {
	service *AuthService
	users   *fakeUserRepo
	shops   *fakeShopRepo
	tokens  *fakeEmailTokenRepo
}

func newAuthFixture() *authFixture {
	users := &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
	customers := &fakeCustomerRepo{customers: make(map[uuid.UUID]*identity.Customer)}
	providers := &fakeProviderRepo{providers: make(map[uuid.UUID]*identity.Provider)}
	shops := &fakeShopRepo{shops: make(map[string]*catalog.Shop)}
	tokens := &fakeEmailTokenRepo{tokens: make(map[string]*confirm.EmailToken)}

	scope := NewNoOpTransactionScope(users, customers, providers, shops, tokens)
	return &authFixture{
		service: NewAuthService(scope, users, fakeTokenIssuer{}, zap.NewNop()),
		users:   users,
		shops:   shops,
		tokens:  tokens,
	}
}

const emailTokenKey = "00112233445566778899aabbccddeeff"

func (f *authFixture) plantEmailToken(t *testing.T, userID uuid.UUID) {
	t.Helper()
	token, err := confirm.NewEmailToken(userID, emailTokenKey)
	require.NoError(t, err)
	require.NoError(t, f.tokens.Save(context.Background(), token))
}

func TestRegisterCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an inactive buyer with profile", func(t *testing.T) {
		f := newAuthFixture()

		user, err := f.service.RegisterCustomer(ctx, RegisterCustomerRequest{
			Email:    "buyer@example.com",
			Password: "secret-password",
			City:     "Moscow",
		})
		require.NoError(t, err)
		assert.Equal(t, "buyer", user.Role)
		assert.False(t, user.Active)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.RegisterCustomer(ctx, RegisterCustomerRequest{Email: "buyer@example.com", Password: "secret-password"})
		require.NoError(t, err)

		_, err = f.service.RegisterCustomer(ctx, RegisterCustomerRequest{Email: "Buyer@Example.com", Password: "secret-password"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestRegisterProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the shop on first registration", func(t *testing.T) {
		f := newAuthFixture()

		user, err := f.service.RegisterProvider(ctx, RegisterProviderRequest{
			Email:    "staff@svyaznoy.example.com",
			Password: "secret-password",
			ShopName: "Svyaznoy",
			Position: "manager",
		})
		require.NoError(t, err)
		assert.Equal(t, "provider", user.Role)

		_, err = f.shops.FindByName(ctx, "Svyaznoy")
		require.NoError(t, err)
	})

	t.Run("reuses an existing shop", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.RegisterProvider(ctx, RegisterProviderRequest{
			Email: "a@shop.example.com", Password: "secret-password", ShopName: "Svyaznoy",
		})
		require.NoError(t, err)
		_, err = f.service.RegisterProvider(ctx, RegisterProviderRequest{
			Email: "b@shop.example.com", Password: "secret-password", ShopName: "Svyaznoy",
		})
		require.NoError(t, err)

		assert.Len(t, f.shops.shops, 1)
	})
}

func TestConfirmEmail(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, f *authFixture) uuid.UUID {
		t.Helper()
		user, err := f.service.RegisterCustomer(ctx, RegisterCustomerRequest{Email: "buyer@example.com", Password: "secret-password"})
		require.NoError(t, err)
		return user.ID
	}

	t.Run("activates the account and consumes the token", func(t *testing.T) {
		f := newAuthFixture()
		userID := register(t, f)
		f.plantEmailToken(t, userID)

		user, err := f.service.ConfirmEmail(ctx, emailTokenKey)
		require.NoError(t, err)
		assert.True(t, user.Active)

		_, err = f.service.ConfirmEmail(ctx, emailTokenKey)
		require.ErrorIs(t, err, shared.ErrInvalidToken)
	})

	t.Run("unknown key fails with the generic token error", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.ConfirmEmail(ctx, "ffffffffffffffff")
		require.ErrorIs(t, err, shared.ErrInvalidToken)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	activated := func(t *testing.T, f *authFixture) {
		t.Helper()
		user, err := f.service.RegisterCustomer(ctx, RegisterCustomerRequest{Email: "buyer@example.com", Password: "secret-password"})
		require.NoError(t, err)
		f.plantEmailToken(t, user.ID)
		_, err = f.service.ConfirmEmail(ctx, emailTokenKey)
		require.NoError(t, err)
	}

	t.Run("issues tokens for an active account", func(t *testing.T) {
		f := newAuthFixture()
		activated(t, f)

		response, err := f.service.Login(ctx, LoginRequest{Email: "Buyer@Example.com", Password: "secret-password"})
		require.NoError(t, err)
		assert.NotEmpty(t, response.Tokens.AccessToken)
		assert.Equal(t, int64(900), response.Tokens.ExpiresIn)
	})

	t.Run("rejects inactive accounts", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.service.RegisterCustomer(ctx, RegisterCustomerRequest{Email: "buyer@example.com", Password: "secret-password"})
		require.NoError(t, err)

		_, err = f.service.Login(ctx, LoginRequest{Email: "buyer@example.com", Password: "secret-password"})
		require.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		f := newAuthFixture()
		activated(t, f)

		_, err := f.service.Login(ctx, LoginRequest{Email: "buyer@example.com", Password: "wrong-password"})
		require.ErrorIs(t, err, shared.ErrUnauthorized)
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		f := newAuthFixture()

		_, err := f.service.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret-password"})
		require.ErrorIs(t, err, shared.ErrUnauthorized)
	})
}
