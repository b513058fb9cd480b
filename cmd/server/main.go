package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/storeadmin/backend/internal/application/catalog"
	checkoutapp "github.com/storeadmin/backend/internal/application/checkout"
	identityapp "github.com/storeadmin/backend/internal/application/identity"
	orderapp "github.com/storeadmin/backend/internal/application/order"
	"github.com/storeadmin/backend/internal/infrastructure/auth"
	"github.com/storeadmin/backend/internal/infrastructure/config"
	identityinfra "github.com/storeadmin/backend/internal/infrastructure/identity"
	"github.com/storeadmin/backend/internal/infrastructure/logger"
	"github.com/storeadmin/backend/internal/infrastructure/payment"
	"github.com/storeadmin/backend/internal/infrastructure/persistence"
	"github.com/storeadmin/backend/internal/interfaces/http/handler"
	"github.com/storeadmin/backend/internal/interfaces/http/middleware"
	"github.com/storeadmin/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting store admin backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
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

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected")

	// Repositories
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	taxonomyRepo := persistence.NewGormTaxonomyRepository(db.DB)
	attributeRepo := persistence.NewGormAttributeRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Payment provider
	stripeConfig := &payment.StripeConfig{
		SecretKey:     cfg.Payment.SecretKey,
		WebhookSecret: cfg.Payment.WebhookSecret,
	}
	checkoutAdapter, err := payment.NewStripeCheckoutAdapter(stripeConfig, log)
	if err != nil {
		log.Fatal("Failed to initialize payment provider", zap.Error(err))
	}

	// Identity provider webhook verification and session tokens
	userWebhookVerifier, err := identityinfra.NewSvixVerifier(cfg.Identity.WebhookSecret)
	if err != nil {
		log.Fatal("Failed to initialize identity webhook verifier", zap.Error(err))
	}
	sessionVerifier := auth.NewSessionVerifier(cfg.Session)

	// Application services
	productService := catalogapp.NewProductService(productRepo, storeRepo, taxonomyRepo)
	dashboardService := catalogapp.NewDashboardService(
		storeRepo, productRepo, taxonomyRepo, attributeRepo, orderRepo, cfg.Checkout.Currency,
	)
	checkoutService := checkoutapp.NewService(
		productRepo, orderRepo, checkoutAdapter, cfg.Checkout.StorefrontURL,
		checkoutapp.Pricing{
			Currency:         cfg.Checkout.Currency,
			DeliveryCost:     cfg.Checkout.DeliveryCost,
			FreeDeliveryOver: cfg.Checkout.FreeDeliveryOver,
		},
		log,
	)
	userSyncService := identityapp.NewUserSyncService(userRepo, userWebhookVerifier, log)
	paymentWebhookService := orderapp.NewPaymentWebhookService(stripeConfig, orderRepo, log)

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, log)
	userWebhookHandler := handler.NewUserWebhookHandler(userSyncService, log)
	paymentWebhookHandler := handler.NewPaymentWebhookHandler(paymentWebhookService, log)
	systemHandler := handler.NewSystemHandler(db, log)

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
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Storefront-facing routes are called from arbitrary origins and carry
	// permissive CORS; dashboard routes answer only the configured admin
	// origins. Session extraction is pass-through; handlers that need an
	// identity enforce it.
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	r := router.NewRouter(engine)
	r.UseStoreMiddleware(middleware.Session(sessionVerifier))
	r.RegisterStore(productHandler, middleware.StorefrontCORS()).
		RegisterStore(dashboardHandler, middleware.CORSWithConfig(corsConfig)).
		RegisterStore(checkoutHandler, middleware.StorefrontCORS())
	r.Register(userWebhookHandler).
		Register(paymentWebhookHandler).
		Register(systemHandler)
	r.Setup()

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
