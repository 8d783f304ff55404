package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	addressapp "github.com/tienda/backend/internal/application/address"
	cartapp "github.com/tienda/backend/internal/application/cart"
	catalogapp "github.com/tienda/backend/internal/application/catalog"
	designapp "github.com/tienda/backend/internal/application/design"
	geographyapp "github.com/tienda/backend/internal/application/geography"
	identityapp "github.com/tienda/backend/internal/application/identity"
	orderapp "github.com/tienda/backend/internal/application/order"
	paymentapp "github.com/tienda/backend/internal/application/payment"
	"github.com/tienda/backend/internal/infrastructure/auth"
	"github.com/tienda/backend/internal/infrastructure/cache"
	"github.com/tienda/backend/internal/infrastructure/config"
	"github.com/tienda/backend/internal/infrastructure/event"
	"github.com/tienda/backend/internal/infrastructure/logger"
	"github.com/tienda/backend/internal/infrastructure/persistence"
	"github.com/tienda/backend/internal/infrastructure/storage"
	"github.com/tienda/backend/internal/interfaces/http/handler"
	"github.com/tienda/backend/internal/interfaces/http/middleware"
	"github.com/tienda/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
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

	log.Info("Starting Tienda Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	municipalityRepo := persistence.NewGormMunicipalityRepository(db.DB)
	neighborhoodRepo := persistence.NewGormNeighborhoodRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	designRepo := persistence.NewGormDesignRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Approved gateway payments drive the order PAID transition
	paymentApprovedHandler := orderapp.NewPaymentApprovedHandler(orderRepo, eventBus, log)
	eventBus.Subscribe(paymentApprovedHandler, paymentApprovedHandler.EventTypes()...)

	log.Info("Event handlers registered",
		zap.Strings("payment_approved_events", paymentApprovedHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Reference data cache (Redis with in-memory fallback)
	cacheFactory := cache.NewReferenceCacheFactory(cfg.Redis, cache.WithLogger(log))
	referenceCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create reference cache", zap.Error(err))
	}

	// Object storage for product images and design files
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Bucket != "" && cfg.Storage.AccessKeyID != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage configured",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("region", cfg.Storage.Region),
		)
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage not configured, upload URLs will be stubbed")
	}

	// Initialize application services
	geographyService := geographyapp.NewService(departmentRepo, municipalityRepo, neighborhoodRepo)
	geographyService.SetCache(referenceCache)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, eventBus, identityapp.DefaultAuthServiceConfig(), log)

	addressService := addressapp.NewService(addressRepo, municipalityRepo, neighborhoodRepo, eventBus)
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo)
	imageService := catalogapp.NewImageService(productRepo, objectStorage, catalogapp.ImageServiceConfig{
		UploadURLExpiry: cfg.Storage.PresignExpiry,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	})
	designService := designapp.NewService(designRepo, productRepo, objectStorage, eventBus, designapp.ServiceConfig{
		UploadURLExpiry: cfg.Storage.PresignExpiry,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	})
	cartService := cartapp.NewService(cartRepo, productRepo, designRepo)
	orderService := orderapp.NewService(orderRepo, productRepo, designRepo, eventBus)
	paymentService := paymentapp.NewService(paymentRepo, orderRepo, eventBus, log)

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler(db)
	geographyHandler := handler.NewGeographyHandler(geographyService)
	authHandler := handler.NewAuthHandler(authService)
	addressHandler := handler.NewAddressHandler(addressService)
	productHandler := handler.NewProductHandler(productService, imageService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	designHandler := handler.NewDesignHandler(designService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	paymentHandler := handler.NewPaymentHandler(paymentService, cfg.Payment.WompiEventsSecret)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes.
	// Geography and catalog browsing stays open for GET requests, the
	// cart resolves its owner from either a token or the session header,
	// and the gateway notification webhook carries its own signature.
	r.Use(middleware.JWTAuth(middleware.AuthConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/auth/verify-email",
			"/api/v1/system/health",
			"/api/v1/system/ready",
			"/api/v1/payments/notifications",
		},
		PublicReadPrefixes: []string{
			"/api/v1/geography",
			"/api/v1/products",
			"/api/v1/categories",
		},
		OptionalPathPrefixes: []string{
			"/api/v1/cart",
		},
		Logger: log,
	}))

	r.Register(
		systemHandler,
		geographyHandler,
		authHandler,
		addressHandler,
		productHandler,
		categoryHandler,
		reviewHandler,
		designHandler,
		cartHandler,
		orderHandler,
		paymentHandler,
	)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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

// healthHandler returns a handler for the root health check endpoint
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
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
