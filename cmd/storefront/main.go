package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sk-equipments/storefront/internal/api"
	"github.com/sk-equipments/storefront/internal/app"
	"github.com/sk-equipments/storefront/internal/auth"
	"github.com/sk-equipments/storefront/internal/catalog"
	"github.com/sk-equipments/storefront/internal/masterdata/categories"
	"github.com/sk-equipments/storefront/internal/masterdata/products"
	"github.com/sk-equipments/storefront/internal/masterdata/subcategories"
	"github.com/sk-equipments/storefront/internal/media"
	"github.com/sk-equipments/storefront/internal/observability"
	"github.com/sk-equipments/storefront/internal/platform/cache"
	"github.com/sk-equipments/storefront/internal/platform/db"
	"github.com/sk-equipments/storefront/internal/shared"
	"github.com/sk-equipments/storefront/internal/store"
	"github.com/sk-equipments/storefront/internal/view"
	"github.com/sk-equipments/storefront/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "storefront_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(pool)
	catalogLoader := catalog.NewLoader(catalogRepo, logger)
	snapshotCache := catalog.NewSnapshotCache(redisClient, cfg.SnapshotCacheTTL)
	snapshots := catalog.NewCachedLoader(catalogLoader, snapshotCache)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	productService := products.NewService(products.NewRepository(pool))
	categoryService := categories.NewService(categories.NewRepository(pool))
	subcategoryService := subcategories.NewService(subcategories.NewRepository(pool))

	authService := auth.NewService(cfg.AdminEmail, cfg.AdminPasswordHash)
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	imageClient := media.NewClient(media.Config{
		CloudName: cfg.ImageCloudName,
		APIKey:    cfg.ImageAPIKey,
		APISecret: cfg.ImageAPISecret,
		Folder:    cfg.ImageFolder,
		Timeout:   cfg.UploadTimeout,
	})
	mediaHandler := media.NewHandler(logger, imageClient, cfg.UploadMaxBytes)

	storeHandler := store.NewHandler(logger, snapshots, templates, csrfManager, cfg.WhatsAppNumber)
	apiHandler := api.NewHandler(logger, snapshots, productService, categoryService, subcategoryService, jobClient, jobClient)

	productHandler := products.NewHandler(logger, productService, categoryService, subcategoryService, templates, csrfManager, sessionManager, jobClient, jobClient)
	categoryHandler := categories.NewHandler(logger, categoryService, templates, csrfManager, sessionManager, jobClient)
	subcategoryHandler := subcategories.NewHandler(logger, subcategoryService, categoryService, templates, csrfManager, sessionManager, jobClient)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		Metrics:            metrics,
		StoreHandler:       storeHandler,
		AuthHandler:        authHandler,
		APIHandler:         apiHandler,
		MediaHandler:       mediaHandler,
		ProductHandler:     productHandler,
		CategoryHandler:    categoryHandler,
		SubcategoryHandler: subcategoryHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
