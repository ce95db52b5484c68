package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/farrelzna/Zhourt-URLShortner/internal/config"
	"github.com/farrelzna/Zhourt-URLShortner/internal/handlers"
	"github.com/farrelzna/Zhourt-URLShortner/internal/repository"
	"github.com/farrelzna/Zhourt-URLShortner/internal/services"
	"github.com/farrelzna/Zhourt-URLShortner/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Database
	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 4. Initialize Redis
	rdb, err := repository.InitRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn("Failed to connect to Redis, resolver cache disabled", "error", err)
		rdb = nil
	}

	// 5. Run Migrations
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		logger.Info("Running database migrations...")
		if err := repository.RunMigrations(cfg.DatabaseURL, ""); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	// 6. Initialize Object Storage (QR images)
	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		s3up, err := storage.NewS3Uploader(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		uploader = s3up
	} else {
		logger.Warn("S3 bucket not configured, QR images disabled")
	}

	// 7. Initialize Repositories & Services
	linkRepo := repository.NewLinkRepository(db)
	clickRepo := repository.NewClickRepository(db)

	geoIPService := services.NewGeoIPService(cfg, logger)
	recorder := services.NewClickRecorder(clickRepo, logger, geoIPService)
	resolver := services.NewResolver(linkRepo, rdb, logger)
	shortenerService := services.NewShortenerService(linkRepo, uploader, logger, cfg.BaseURL)
	analyticsService := services.NewAnalyticsService(linkRepo, clickRepo, logger)
	rateLimiter := services.NewIPRateLimiter(5, 10, logger)

	// 8. Initialize Handler & Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handlers.NewHandler(cfg, logger, db, linkRepo, shortenerService, resolver, recorder, analyticsService)
	r := h.SetupRouter(rateLimiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// 9. Start Background Workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	go recorder.Start(workerCtx)
	go geoIPService.Init()
	go geoIPService.StartUpdater(workerCtx)
	rateLimiter.StartCleanup(workerCtx, 10*time.Minute)

	// 10. Start Server with Graceful Shutdown
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	// Wait a tiny bit for workers
	time.Sleep(100 * time.Millisecond)

	logger.Info("Server exiting")
	return nil
}
