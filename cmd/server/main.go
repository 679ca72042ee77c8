package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/weshare/backend/internal/application/identity"
	notifapp "github.com/weshare/backend/internal/application/notification"
	appsharing "github.com/weshare/backend/internal/application/sharing"
	"github.com/weshare/backend/internal/infrastructure/auth"
	"github.com/weshare/backend/internal/infrastructure/cache"
	"github.com/weshare/backend/internal/infrastructure/config"
	"github.com/weshare/backend/internal/infrastructure/event"
	"github.com/weshare/backend/internal/infrastructure/logger"
	"github.com/weshare/backend/internal/infrastructure/mail"
	"github.com/weshare/backend/internal/infrastructure/persistence"
	"github.com/weshare/backend/internal/infrastructure/telemetry"
	"github.com/weshare/backend/internal/interfaces/http/handler"
	"github.com/weshare/backend/internal/interfaces/http/middleware"
	"github.com/weshare/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
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

	log.Info("Starting WeShare Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

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

	if tracerProvider.IsEnabled() {
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Database.DBName, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	donationRepo := persistence.NewGormDonationRepository(db.DB)
	requestRepo := persistence.NewGormRequestRepository(db.DB)
	matchRepo := persistence.NewGormMatchRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Unread-count cache; a dead Redis degrades to repository counts
	var unreadCounter *cache.RedisUnreadCounter
	if counter, err := cache.NewRedisUnreadCounter(cfg.Redis, log); err != nil {
		log.Warn("Redis unavailable, unread counts served from the database", zap.Error(err))
	} else {
		unreadCounter = counter
		defer func() {
			if err := unreadCounter.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	// Initialize application services
	donationService := appsharing.NewDonationService(donationRepo, requestRepo, matchRepo)
	requestService := appsharing.NewRequestService(requestRepo, donationRepo, matchRepo, userRepo)
	notificationService := notifapp.NewNotificationService(notificationRepo)
	userService := identityapp.NewUserService(userRepo)
	if unreadCounter != nil {
		notificationService.SetUnreadCounter(unreadCounter)
	}

	// Initialize event bus and the notification fan-out
	eventBus := event.NewInMemoryEventBus(log)

	dispatcher := notifapp.NewDispatcher(notificationRepo, donationRepo, userRepo, log)
	if unreadCounter != nil {
		dispatcher.SetUnreadCounter(unreadCounter)
	}
	if cfg.Mail.Enabled {
		dispatcher.SetMailer(mail.NewSMTPMailer(cfg.Mail, log))
		log.Info("Transactional email enabled", zap.String("host", cfg.Mail.Host))
	}
	eventBus.Subscribe(dispatcher)
	log.Info("Notification dispatcher subscribed", zap.Strings("event_types", dispatcher.EventTypes()))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	donationService.SetEventPublisher(eventBus)
	requestService.SetEventPublisher(eventBus)

	// Background sweep moving overdue donations to expired
	sweepDone := startExpirySweep(cfg.Sharing, donationService, log)
	defer sweepDone()

	// Token validation
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	donationHandler := handler.NewDonationHandler(donationService)
	requestHandler := handler.NewRequestHandler(requestService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	userHandler := handler.NewUserHandler(userService)
	systemHandler := handler.NewSystemHandler(db.Ping)

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

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	})

	// Donation browsing is public; everything that mutates needs a token.
	// Both groups share the /donations prefix.
	donationPublicRoutes := router.NewDomainGroup("donations-public", "/donations")
	donationPublicRoutes.GET("", donationHandler.List)
	donationPublicRoutes.GET("/:id", donationHandler.GetByID)

	donationRoutes := router.NewDomainGroup("donations", "/donations")
	donationRoutes.Use(jwtAuth)
	donationRoutes.POST("", middleware.RequireDonor(), donationHandler.Create)
	donationRoutes.GET("/my-donations", donationHandler.ListMine)
	donationRoutes.PUT("/:id", donationHandler.Update)
	donationRoutes.DELETE("/:id", donationHandler.Delete)
	donationRoutes.PUT("/:id/accept-request/:requestId", middleware.RequireDonor(), donationHandler.AcceptRequest)
	donationRoutes.PUT("/:id/mark-fulfilled", middleware.RequireDonor(), donationHandler.MarkFulfilled)

	requestRoutes := router.NewDomainGroup("requests", "/requests")
	requestRoutes.Use(jwtAuth)
	requestRoutes.POST("", middleware.RequireReceiver(), requestHandler.Create)
	requestRoutes.GET("/all-open", requestHandler.ListOpen)
	requestRoutes.GET("/my-requests", requestHandler.ListMine)
	requestRoutes.GET("/donation/:donationId", requestHandler.ListForDonation)
	requestRoutes.GET("/:id", requestHandler.GetByID)
	requestRoutes.PUT("/:id", middleware.RequireReceiver(), requestHandler.Update)
	requestRoutes.DELETE("/:id", middleware.RequireReceiver(), requestHandler.Delete)
	requestRoutes.PUT("/:id/rate", middleware.RequireReceiver(), requestHandler.Rate)
	requestRoutes.POST("/:id/fulfill", middleware.RequireDonor(), requestHandler.Fulfill)

	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.Use(jwtAuth)
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.GET("/unread-count", notificationHandler.UnreadCount)
	notificationRoutes.PUT("/:id/read", notificationHandler.MarkRead)
	notificationRoutes.PUT("/read-all", notificationHandler.MarkAllRead)
	notificationRoutes.DELETE("/:id", notificationHandler.Delete)

	userPublicRoutes := router.NewDomainGroup("users-public", "/users")
	userPublicRoutes.GET("/:id", userHandler.GetByID)
	userPublicRoutes.GET("/:id/rating", donationHandler.DonorRating)

	userRoutes := router.NewDomainGroup("users", "/users")
	userRoutes.Use(jwtAuth)
	userRoutes.GET("/profile", userHandler.GetProfile)
	userRoutes.PUT("/profile", userHandler.UpdateProfile)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(donationPublicRoutes).
		Register(donationRoutes).
		Register(requestRoutes).
		Register(notificationRoutes).
		Register(userPublicRoutes).
		Register(userRoutes).
		Register(systemRoutes)

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

// startExpirySweep periodically expires donations whose expiry date has
// passed. The returned function stops the sweep.
func startExpirySweep(cfg config.SharingConfig, donations *appsharing.DonationService, log *zap.Logger) func() {
	if !cfg.ExpirySweepEnabled {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.ExpirySweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				expired, err := donations.ExpireOverdue(context.Background(), cfg.ExpirySweepBatch)
				if err != nil {
					log.Error("Expiry sweep failed", zap.Error(err))
					continue
				}
				if expired > 0 {
					log.Info("Expired overdue donations", zap.Int("count", expired))
				}
			}
		}
	}()

	log.Info("Expiry sweep started",
		zap.Duration("interval", cfg.ExpirySweepInterval),
		zap.Int("batch", cfg.ExpirySweepBatch),
	)
	return func() { close(done) }
}
