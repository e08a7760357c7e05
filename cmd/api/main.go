package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_dashboard/internal/assistant"
	"github.com/GTDGit/gtd_dashboard/internal/cache"
	"github.com/GTDGit/gtd_dashboard/internal/config"
	"github.com/GTDGit/gtd_dashboard/internal/database"
	"github.com/GTDGit/gtd_dashboard/internal/handler"
	"github.com/GTDGit/gtd_dashboard/internal/middleware"
	"github.com/GTDGit/gtd_dashboard/internal/repository"
	"github.com/GTDGit/gtd_dashboard/internal/service"
	"github.com/GTDGit/gtd_dashboard/internal/sse"
)

// main is the entrypoint for the dashboard API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("store", cfg.StoreDriver).Msg("starting dashboard api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Open the store
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("store initialization failed")
		fmt.Fprintf(os.Stderr, "store initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	// 4. Connect to Redis (optional)
	var counter middleware.WindowCounter
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis connection failed - using in-process rate limiting")
		} else {
			defer redisClient.Close()
			counter = redisClient
			log.Info().Msg("redis connected successfully")
		}
	}

	// 5. Initialize services
	now := service.Clock(cfg.Location)
	hub := sse.NewHub()
	dashboardSvc := service.NewDashboardService(store, now)
	orderSvc := service.NewOrderService(store, sse.NewHubNotifier(hub), now)
	productSvc := service.NewProductService(store, now)
	customerSvc := service.NewCustomerService(store, now)
	responder := assistant.NewResponder(store, now)

	// 6. Initialize handlers
	handlers := handler.Handlers{
		Health:    handler.NewHealthHandler(store),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Assistant: handler.NewAssistantHandler(responder),
		Orders:    handler.NewOrderHandler(orderSvc),
		Products:  handler.NewProductHandler(productSvc),
		Customers: handler.NewCustomerHandler(customerSvc),
		Events:    handler.NewSSEHandler(hub),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimit, counter)
	go limiter.RunCleanup(ctx)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	router.Use(limiter.Middleware())
	handler.RegisterRoutes(router.Group("/api"), handlers)

	// 8. Start HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	// 10. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// openStore builds the configured store and returns a function releasing it.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("using in-memory store - data is lost on restart")
		return repository.NewMemoryStore(), func() {}, nil
	}

	db, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := runMigrations(db.DB); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Info().Msg("migrations completed successfully")

	return repository.NewPostgresStore(db), func() { _ = db.Close() }, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
