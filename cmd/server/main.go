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

	accessapp "github.com/innkeep/backend/internal/application/access"
	bookingapp "github.com/innkeep/backend/internal/application/booking"
	guestapp "github.com/innkeep/backend/internal/application/guest"
	identityapp "github.com/innkeep/backend/internal/application/identity"
	propertyapp "github.com/innkeep/backend/internal/application/property"
	domainidentity "github.com/innkeep/backend/internal/domain/identity"
	"github.com/innkeep/backend/internal/infrastructure/auth"
	"github.com/innkeep/backend/internal/infrastructure/cache"
	"github.com/innkeep/backend/internal/infrastructure/config"
	"github.com/innkeep/backend/internal/infrastructure/lockvendor"
	"github.com/innkeep/backend/internal/infrastructure/logger"
	"github.com/innkeep/backend/internal/infrastructure/persistence"
	"github.com/innkeep/backend/internal/infrastructure/pricing"
	"github.com/innkeep/backend/internal/infrastructure/storage"
	"github.com/innkeep/backend/internal/interfaces/http/handler"
	"github.com/innkeep/backend/internal/interfaces/http/middleware"
	"github.com/innkeep/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Innkeep Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
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
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	guestRepo := persistence.NewGormGuestRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	roomCategoryRepo := persistence.NewGormRoomCategoryRepository(db.DB)
	chargeItemRepo := persistence.NewGormChargeItemRepository(db.DB)
	cardKeyRepo := persistence.NewGormCardKeyRepository(db.DB)
	personnelRepo := persistence.NewGormPersonnelRepository(db.DB)

	// Charge catalog cache: redis when reachable, in-process otherwise.
	// The wizard seeds default charges on every open, so this path is hot.
	var chargeCache cache.ChargeCatalogCache
	redisCache, err := cache.NewRedisChargeCatalogCache(cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory charge catalog cache", zap.Error(err))
		chargeCache = cache.NewInMemoryChargeCatalogCache()
	} else {
		defer func() {
			_ = redisCache.Close()
		}()
		chargeCache = redisCache
	}
	cachedChargeItemRepo := cache.NewCachedChargeItemRepository(chargeItemRepo, chargeCache, log)

	// Guest photo storage: S3-compatible when configured, in-memory otherwise
	var objectStorage guestapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			cancel()
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
		log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewMemoryObjectStorage()
		log.Warn("No storage bucket configured, guest photos are held in memory")
	}

	// Door-lock vendor client
	var lockVendor *lockvendor.Client
	if cfg.LockVendor.BaseURL != "" {
		lockVendor, err = lockvendor.NewClient(&cfg.LockVendor, log)
		if err != nil {
			log.Fatal("Failed to initialize lock vendor client", zap.Error(err))
		}
	}

	// JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Price provider backed by the room rate tables
	priceProvider := pricing.NewRateTableProvider(roomRepo, log)

	// Initialize application services
	authService := identityapp.NewAuthService(personnelRepo, jwtService, log)
	guestService := guestapp.NewGuestService(guestRepo, objectStorage, log)
	propertyService := propertyapp.NewPropertyService(roomRepo, roomCategoryRepo, cachedChargeItemRepo)
	bookingService := bookingapp.NewBookingService(bookingRepo)
	submitService := bookingapp.NewSubmitService(bookingRepo, objectStorage, log)
	wizardService := bookingapp.NewWizardService(
		bookingRepo,
		guestRepo,
		roomRepo,
		cachedChargeItemRepo,
		priceProvider,
		submitService,
		log,
		cfg.Pricing.SettleDelay,
	)

	var accessService *accessapp.AccessService
	if lockVendor != nil {
		accessService = accessapp.NewAccessService(cardKeyRepo, bookingRepo, roomRepo, lockVendor, log)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	guestHandler := handler.NewGuestHandler(guestService)
	roomHandler := handler.NewRoomHandler(propertyService)
	chargeItemHandler := handler.NewChargeItemHandler(propertyService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	wizardHandler := handler.NewWizardHandler(wizardService)
	systemHandler := handler.NewSystemHandler()

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
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.RequestLogger(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	adminOnly := middleware.RequireRole(string(domainidentity.RoleAdmin))
	frontDesk := middleware.RequireRole(string(domainidentity.RoleAdmin), string(domainidentity.RoleFrontDesk))

	// Auth routes
	authRoutes := router.NewDomainGroup("/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/personnel", adminOnly, authHandler.CreatePersonnel)
	authRoutes.GET("/personnel", adminOnly, authHandler.ListPersonnel)
	authRoutes.DELETE("/personnel/:id", adminOnly, authHandler.DeactivatePersonnel)
	r.Register(authRoutes)

	// Guest directory routes
	guestRoutes := router.NewDomainGroup("/guests")
	guestRoutes.POST("", frontDesk, guestHandler.Create)
	guestRoutes.GET("", guestHandler.List)
	guestRoutes.GET("/:id", guestHandler.Get)
	guestRoutes.PUT("/:id", frontDesk, guestHandler.Update)
	guestRoutes.POST("/:id/photo", frontDesk, guestHandler.UploadPhoto)
	guestRoutes.DELETE("/:id", adminOnly, guestHandler.Delete)
	r.Register(guestRoutes)

	// Property routes (rooms, categories, charge catalog)
	propertyRoutes := router.NewDomainGroup("/property")
	propertyRoutes.POST("/rooms", adminOnly, roomHandler.Create)
	propertyRoutes.GET("/rooms", roomHandler.List)
	propertyRoutes.GET("/rooms/:id", roomHandler.Get)
	propertyRoutes.PUT("/rooms/:id/rates", adminOnly, roomHandler.UpdateRates)
	propertyRoutes.PUT("/rooms/:id/status", frontDesk, roomHandler.ChangeStatus)
	propertyRoutes.DELETE("/rooms/:id", adminOnly, roomHandler.Delete)
	propertyRoutes.POST("/categories", adminOnly, roomHandler.CreateCategory)
	propertyRoutes.GET("/categories", roomHandler.ListCategories)
	propertyRoutes.DELETE("/categories/:id", adminOnly, roomHandler.DeleteCategory)
	propertyRoutes.POST("/charge-items", adminOnly, chargeItemHandler.Create)
	propertyRoutes.GET("/charge-items", chargeItemHandler.List)
	propertyRoutes.DELETE("/charge-items/:id", adminOnly, chargeItemHandler.Delete)
	r.Register(propertyRoutes)

	// Booking query routes
	bookingRoutes := router.NewDomainGroup("/bookings")
	bookingRoutes.GET("", bookingHandler.List)
	bookingRoutes.GET("/:id", bookingHandler.Get)
	bookingRoutes.GET("/reference/:reference", bookingHandler.GetByReference)
	bookingRoutes.PUT("/:id/status", frontDesk, bookingHandler.ChangeStatus)
	bookingRoutes.DELETE("/:id", adminOnly, bookingHandler.Delete)
	r.Register(bookingRoutes)

	// Booking wizard session routes
	wizardRoutes := router.NewDomainGroup("/wizard")
	wizardRoutes.Use(frontDesk)
	wizardRoutes.POST("/sessions", wizardHandler.Open)
	wizardRoutes.POST("/sessions/booking/:booking_id", wizardHandler.OpenForBooking)
	wizardRoutes.GET("/sessions/:session_id", wizardHandler.Get)
	wizardRoutes.DELETE("/sessions/:session_id", wizardHandler.Close)
	wizardRoutes.PUT("/sessions/:session_id/status", wizardHandler.SetStatus)
	wizardRoutes.PUT("/sessions/:session_id/dates", wizardHandler.SetDates)
	wizardRoutes.PUT("/sessions/:session_id/occupancy", wizardHandler.SetOccupancy)
	wizardRoutes.PUT("/sessions/:session_id/guest-mode", wizardHandler.SetGuestMode)
	wizardRoutes.PUT("/sessions/:session_id/guest", wizardHandler.SetGuestDetails)
	wizardRoutes.PUT("/sessions/:session_id/guest/select", wizardHandler.SelectGuest)
	wizardRoutes.DELETE("/sessions/:session_id/guest/select", wizardHandler.ClearGuest)
	wizardRoutes.POST("/sessions/:session_id/guest/photo", wizardHandler.AttachPhoto)
	wizardRoutes.POST("/sessions/:session_id/allocations", wizardHandler.AddAllocation)
	wizardRoutes.DELETE("/sessions/:session_id/allocations/:index", wizardHandler.RemoveAllocation)
	wizardRoutes.PUT("/sessions/:session_id/allocations/:index/room", wizardHandler.SetAllocationRoom)
	wizardRoutes.PUT("/sessions/:session_id/allocations/:index/guests", wizardHandler.SetAllocationGuests)
	wizardRoutes.PUT("/sessions/:session_id/discount", wizardHandler.SetDiscount)
	wizardRoutes.PUT("/sessions/:session_id/charges", wizardHandler.SetCharges)
	wizardRoutes.POST("/sessions/:session_id/payments", wizardHandler.AddPayment)
	wizardRoutes.DELETE("/sessions/:session_id/payments/:index", wizardHandler.RemovePayment)
	wizardRoutes.PUT("/sessions/:session_id/special-requests", wizardHandler.SetSpecialRequests)
	wizardRoutes.POST("/sessions/:session_id/next", wizardHandler.Next)
	wizardRoutes.POST("/sessions/:session_id/previous", wizardHandler.Previous)
	wizardRoutes.POST("/sessions/:session_id/submit", wizardHandler.Submit)
	r.Register(wizardRoutes)

	// Card key routes, only when a lock vendor is configured
	if accessService != nil {
		cardKeyHandler := handler.NewCardKeyHandler(accessService)
		cardKeyRoutes := router.NewDomainGroup("/card-keys")
		cardKeyRoutes.Use(frontDesk)
		cardKeyRoutes.POST("", cardKeyHandler.Issue)
		cardKeyRoutes.DELETE("/:id", cardKeyHandler.Revoke)
		cardKeyRoutes.GET("/booking/:booking_id", cardKeyHandler.ListByBooking)
		r.Register(cardKeyRoutes)
	} else {
		log.Warn("No lock vendor configured, card key endpoints disabled")
	}

	// System routes
	systemRoutes := router.NewDomainGroup("/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.FromGin(c)
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
