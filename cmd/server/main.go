package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	assetapp "github.com/assettrack/backend/internal/application/asset"
	"github.com/assettrack/backend/internal/infrastructure/cache"
	"github.com/assettrack/backend/internal/infrastructure/config"
	"github.com/assettrack/backend/internal/infrastructure/logger"
	"github.com/assettrack/backend/internal/infrastructure/persistence"
	"github.com/assettrack/backend/internal/interfaces/http/dto"
	"github.com/assettrack/backend/internal/interfaces/http/handler"
	"github.com/assettrack/backend/internal/interfaces/http/middleware"
	"github.com/assettrack/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
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

	log.Info("Starting asset registry",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Repositories
	assetRepo := persistence.NewGormAssetUnitRepository(db.DB)
	historyRepo := persistence.NewGormHistoryRepository(db.DB)
	modelCatalog := persistence.NewGormModelCatalog(db.DB)
	tenantDirectory := persistence.NewGormTenantDirectory(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Tenant lookups run on every contested reassign; put a cache in front
	cacheFactory := cache.NewTenantCacheFactory(cfg.Redis, cache.WithLogger(log))
	cachedTenants, err := cacheFactory.CreateCache(tenantDirectory)
	if err != nil {
		log.Fatal("Failed to create tenant cache", zap.Error(err))
	}

	// Application service
	assetService := assetapp.NewService(
		assetRepo,
		historyRepo,
		cachedTenants,
		modelCatalog,
		txScope,
		log,
	)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := dto.RegisterValidators(); err != nil {
		log.Fatal("Failed to register request validators", zap.Error(err))
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig),
		middleware.ActorID(),
	)

	// Routes
	systemHandler := handler.NewSystemHandler(db)
	systemHandler.RegisterSystemRoutes(engine)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAssetHandler(assetService))
	r.Setup()

	// HTTP server with graceful shutdown
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
