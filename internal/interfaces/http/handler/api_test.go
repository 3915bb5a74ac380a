package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/retailnet/backend/internal/application/catalog"
	appconfirm "github.com/retailnet/backend/internal/application/confirm"
	appidentity "github.com/retailnet/backend/internal/application/identity"
	"github.com/retailnet/backend/internal/application/importer"
	"github.com/retailnet/backend/internal/application/notification"
	apporder "github.com/retailnet/backend/internal/application/order"
	"github.com/retailnet/backend/internal/domain/catalog"
	"github.com/retailnet/backend/internal/domain/confirm"
	"github.com/retailnet/backend/internal/domain/identity"
	"github.com/retailnet/backend/internal/domain/order"
	"github.com/retailnet/backend/internal/infrastructure/auth"
	"github.com/retailnet/backend/internal/infrastructure/cache"
	"github.com/retailnet/backend/internal/infrastructure/config"
	"github.com/retailnet/backend/internal/infrastructure/event"
	"github.com/retailnet/backend/internal/infrastructure/keygen"
	"github.com/retailnet/backend/internal/infrastructure/persistence"
	"github.com/retailnet/backend/internal/interfaces/http/middleware"
	"github.com/retailnet/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// capturingNotifier records outgoing messages instead of delivering them
type capturingNotifier struct {
	mu   sync.Mutex
	sent []notification.Message
}

func (n *capturingNotifier) Send(_ context.Context, msg notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *capturingNotifier) lastKey(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.sent)

	match := regexp.MustCompile(`key=([0-9a-f]+)`).FindStringSubmatch(n.sent[len(n.sent)-1].Body)
	require.Len(t, match, 2)
	return match[1]
}

type apiFixture struct {
	engine   *gin.Engine
	notifier *capturingNotifier
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Shop{}, &catalog.Category{}, &catalog.Product{},
		&catalog.Parameter{}, &catalog.ProductParameter{}, &catalog.ImportLog{},
		&order.Order{}, &order.OrderPosition{},
		&confirm.EmailToken{}, &confirm.OrderToken{},
		&identity.User{}, &identity.Customer{}, &identity.Provider{},
	))

	log := zap.NewNop()
	notifier := &capturingNotifier{}

	userRepo := persistence.NewGormUserRepository(db)
	providerRepo := persistence.NewGormProviderRepository(db)
	shopRepo := persistence.NewGormShopRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	emailTokenRepo := persistence.NewGormEmailTokenRepository(db)
	orderTokenRepo := persistence.NewGormOrderTokenRepository(db)
	importLogRepo := persistence.NewGormImportLogRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-ok",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test",
	})

	tokenService := appconfirm.NewTokenService(emailTokenRepo, orderTokenRepo, keygen.NewRandomKeyGenerator(), log)

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(notification.NewUserRegisteredHandler(tokenService, notifier, "http://api.test", log))
	bus.Subscribe(notification.NewOrderSubmittedHandler(tokenService, userRepo, notifier, "http://api.test", log))

	authService := appidentity.NewAuthService(
		persistence.NewGormIdentityTransactionScope(db), userRepo, jwtService, log)
	authService.SetEventPublisher(bus)

	shopService := appcatalog.NewShopService(shopRepo, providerRepo, log)
	categoryService := appcatalog.NewCategoryService(categoryRepo)
	productService := appcatalog.NewProductService(productRepo, shopRepo)

	basketService := apporder.NewBasketService(orderRepo, productRepo, shopRepo)
	orderService := apporder.NewOrderService(
		persistence.NewGormOrderTransactionScope(db), orderRepo, productRepo, shopRepo, log)
	orderService.SetEventPublisher(bus)

	importService := importer.NewImportService(
		persistence.NewGormImportTransactionScope(db), importLogRepo, nil, cache.NewInMemoryShopLocker(), log)

	authn := middleware.JWTAuth(jwtService)
	buyer := middleware.RequireRole(string(identity.RoleBuyer))
	provider := middleware.RequireRole(string(identity.RoleProvider))

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.NewRouter(engine).
		Register(NewSystemHandler()).
		Register(NewAuthHandler(authService)).
		Register(NewCatalogHandler(shopService, categoryService, productService)).
		Register(NewBasketHandler(basketService, authn, buyer)).
		Register(NewOrderHandler(orderService, authn, buyer)).
		Register(NewPartnerHandler(importService, shopService, orderService, authn, provider)).
		Setup()

	return &apiFixture{engine: engine, notifier: notifier}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "response was not successful: %s", rec.Body.String())
	return envelope.Data
}

// registerAndLogin walks an account through register, confirm and login and
// returns its access token
func registerAndLogin(t *testing.T, f *apiFixture, path string, body map[string]any) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, path, "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	key := f.notifier.lastKey(t)
	rec = f.do(t, http.MethodGet, "/api/v1/auth/confirm?key="+url.QueryEscape(key), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    body["email"],
		"password": body["password"],
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	tokens, ok := data["tokens"].(map[string]any)
	require.True(t, ok)
	access, ok := tokens["access_token"].(string)
	require.True(t, ok)
	return access
}

const testFeed = `
shop: Svyaznoy
categories:
  - id: 10
    name: Smartphones
goods:
  - id: 4216292
    name: Smartphone X-200
    category: 10
    model: x200
    price: 19990
    price_rrc: 21990
    quantity: 5
    parameters:
      Color: Black
`

func TestAPIFlow(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("login before confirmation is rejected", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"email":    "early@example.com",
			"password": "secret-password",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "early@example.com",
			"password": "secret-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	providerToken := registerAndLogin(t, f, "/api/v1/auth/register/provider", map[string]any{
		"email":     "partner@example.com",
		"password":  "secret-password",
		"shop_name": "Svyaznoy",
	})
	buyerToken := registerAndLogin(t, f, "/api/v1/auth/register", map[string]any{
		"email":    "buyer@example.com",
		"password": "secret-password",
	})

	t.Run("provider imports the catalog", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/partner/import", providerToken, map[string]any{
			"source": testFeed,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		data := decodeData(t, rec)
		assert.EqualValues(t, 1, data["product_count"])
		assert.EqualValues(t, 1, data["category_count"])

		rec = f.do(t, http.MethodGet, "/api/v1/partner/import/history", providerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("buyer cannot use partner endpoints", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/partner/shop", buyerToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	var productID string
	t.Run("catalog browse shows the imported product", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/products", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data []map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.Len(t, envelope.Data, 1)
		assert.Equal(t, "Smartphone X-200", envelope.Data[0]["name"])
		assert.Equal(t, "19990.00", envelope.Data[0]["price"])
		productID, _ = envelope.Data[0]["id"].(string)
		require.NotEmpty(t, productID)

		rec = f.do(t, http.MethodGet, "/api/v1/products/"+productID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeData(t, rec)
		params, ok := data["parameters"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Black", params["Color"])
	})

	t.Run("basket requires authentication", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/basket", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("buyer fills the basket", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, "/api/v1/basket/positions", buyerToken, map[string]any{
			"product_id": productID,
			"amount":     2,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = f.do(t, http.MethodGet, "/api/v1/basket/total", buyerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		data := decodeData(t, rec)
		assert.Equal(t, "39980.00 RUB", data["total"])
	})

	var orderID string
	t.Run("buyer submits and confirms the order", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/api/v1/orders", buyerToken, map[string]any{
			"city":   "Moscow",
			"street": "Tverskaya",
			"house":  "1",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		data := decodeData(t, rec)
		assert.Equal(t, "new", data["status"])
		orderID, _ = data["id"].(string)

		key := f.notifier.lastKey(t)
		rec = f.do(t, http.MethodGet, "/api/v1/orders/confirm?key="+url.QueryEscape(key), "", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		data = decodeData(t, rec)
		assert.Equal(t, "confirmed", data["status"])

		// A confirmation link is single-use.
		rec = f.do(t, http.MethodGet, "/api/v1/orders/confirm?key="+url.QueryEscape(key), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("provider fulfills the order", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/partner/orders", providerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data []map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.Len(t, envelope.Data, 1)

		path := fmt.Sprintf("/api/v1/partner/orders/%s/status", orderID)
		rec = f.do(t, http.MethodPut, path, providerToken, map[string]any{"status": "assembled"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		// Skipping states is not allowed.
		rec = f.do(t, http.MethodPut, path, providerToken, map[string]any{"status": "delivered"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("buyer sees the order history", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/api/v1/orders", buyerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data []map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.Len(t, envelope.Data, 1)
		assert.Equal(t, "assembled", envelope.Data[0]["status"])
	})
}

func TestSystemEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/system/ping", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	assert.Equal(t, "pong", data["message"])
}
