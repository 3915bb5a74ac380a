package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/retailnet/backend/internal/application/catalog"
	appconfirm "github.com/retailnet/backend/internal/application/confirm"
	appidentity "github.com/retailnet/backend/internal/application/identity"
	"github.com/retailnet/backend/internal/application/importer"
	"github.com/retailnet/backend/internal/application/notification"
	apporder "github.com/retailnet/backend/internal/application/order"
	"github.com/retailnet/backend/internal/domain/identity"
	"github.com/retailnet/backend/internal/infrastructure/auth"
	"github.com/retailnet/backend/internal/infrastructure/cache"
	"github.com/retailnet/backend/internal/infrastructure/config"
	"github.com/retailnet/backend/internal/infrastructure/event"
	"github.com/retailnet/backend/internal/infrastructure/feed"
	"github.com/retailnet/backend/internal/infrastructure/keygen"
	"github.com/retailnet/backend/internal/infrastructure/logger"
	"github.com/retailnet/backend/internal/infrastructure/notify"
	"github.com/retailnet/backend/internal/infrastructure/persistence"
	"github.com/retailnet/backend/internal/interfaces/http/handler"
	"github.com/retailnet/backend/internal/interfaces/http/middleware"
	"github.com/retailnet/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting RetailNet Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	providerRepo := persistence.NewGormProviderRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	emailTokenRepo := persistence.NewGormEmailTokenRepository(db.DB)
	orderTokenRepo := persistence.NewGormOrderTokenRepository(db.DB)
	importLogRepo := persistence.NewGormImportLogRepository(db.DB)

	// Shop-level import lock; Redis gives cross-instance exclusion, the
	// in-memory fallback is still correct for a single instance
	var locker importer.ShopLocker
	redisLocker, err := cache.NewRedisShopLocker(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Import.LockTTL, log)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory import locks", zap.Error(err))
		locker = cache.NewInMemoryShopLocker()
	} else {
		locker = redisLocker
		defer func() {
			if err := redisLocker.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	tokenService := appconfirm.NewTokenService(emailTokenRepo, orderTokenRepo, keygen.NewRandomKeyGenerator(), log)

	var notifier notification.Notifier
	if cfg.SMTP.Host != "" {
		notifier = notify.NewSMTPNotifier(cfg.SMTP, log)
	} else {
		log.Warn("SMTP host not configured, notifications are logged only")
		notifier = notification.NewLoggingNotifier(log)
	}

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(notification.NewUserRegisteredHandler(tokenService, notifier, cfg.App.BaseURL, log))
	bus.Subscribe(notification.NewOrderSubmittedHandler(tokenService, userRepo, notifier, cfg.App.BaseURL, log))

	// Application services
	authService := appidentity.NewAuthService(
		persistence.NewGormIdentityTransactionScope(db.DB), userRepo, jwtService, log)
	authService.SetEventPublisher(bus)

	shopService := appcatalog.NewShopService(shopRepo, providerRepo, log)
	categoryService := appcatalog.NewCategoryService(categoryRepo)
	productService := appcatalog.NewProductService(productRepo, shopRepo)

	basketService := apporder.NewBasketService(orderRepo, productRepo, shopRepo)
	orderService := apporder.NewOrderService(
		persistence.NewGormOrderTransactionScope(db.DB), orderRepo, productRepo, shopRepo, log)
	orderService.SetEventPublisher(bus)

	fetcher := feed.NewHTTPFetcher(cfg.Feed.FetchTimeout, cfg.Feed.MaxBodySize, log)
	importService := importer.NewImportService(
		persistence.NewGormImportTransactionScope(db.DB), importLogRepo, fetcher, locker, log)
	importService.SetEventPublisher(bus)

	authn := middleware.JWTAuth(jwtService)
	buyer := middleware.RequireRole(string(identity.RoleBuyer))
	provider := middleware.RequireRole(string(identity.RoleProvider))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	router.NewRouter(engine).
		Register(handler.NewSystemHandler()).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewCatalogHandler(shopService, categoryService, productService)).
		Register(handler.NewBasketHandler(basketService, authn, buyer)).
		Register(handler.NewOrderHandler(orderService, authn, buyer)).
		Register(handler.NewPartnerHandler(importService, shopService, orderService, authn, provider)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
