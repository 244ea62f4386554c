package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	adminapp "github.com/falkeetsingh/Mini-Plant-Store/internal/application/admin"
	cartapp "github.com/falkeetsingh/Mini-Plant-Store/internal/application/cart"
	catalogapp "github.com/falkeetsingh/Mini-Plant-Store/internal/application/catalog"
	checkoutapp "github.com/falkeetsingh/Mini-Plant-Store/internal/application/checkout"
	identityapp "github.com/falkeetsingh/Mini-Plant-Store/internal/application/identity"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/infrastructure/auth"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/infrastructure/config"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/infrastructure/logger"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/infrastructure/persistence"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/infrastructure/storage"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/interfaces/http/handler"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/interfaces/http/middleware"
	"github.com/falkeetsingh/Mini-Plant-Store/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting plant store",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
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

	// Redis-backed token blacklist
	blacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	log.Info("Redis connected")

	// Object storage for product and review images
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := objectStorage.EnsureBucket(ctx); err != nil {
			log.Warn("Could not ensure storage bucket, uploads may fail", zap.Error(err))
		}
		cancel()
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	wishlistService := identityapp.NewWishlistService(wishlistRepo, productRepo, log)
	productService := catalogapp.NewProductService(productRepo, objectStorage, log)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo, userRepo, objectStorage, log)
	cartService := cartapp.NewCartService(cartRepo, productRepo, log)
	orderService := checkoutapp.NewOrderService(txScope, log)
	dashboardService := adminapp.NewDashboardService(userRepo, productRepo, orderRepo, log)

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.RateLimit(middleware.NewRateLimiter(120, time.Minute)))

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	router.Setup(engine, router.Config{
		Handlers: router.Handlers{
			Auth:     handler.NewAuthHandler(authService),
			Product:  handler.NewProductHandler(productService),
			Review:   handler.NewReviewHandler(reviewService),
			Cart:     handler.NewCartHandler(cartService),
			Order:    handler.NewOrderHandler(orderService),
			Wishlist: handler.NewWishlistHandler(wishlistService),
			Admin:    handler.NewAdminHandler(dashboardService),
			System:   handler.NewSystemHandler(db),
		},
		JWT: middleware.JWTConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		},
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
