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

	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/config"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/handler"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/logging"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/repository"
	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	closeLogs, err := logging.Setup(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLogs()

	slog.Info("Nestfinder query extractor",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)

	gin.SetMode(cfg.Server.GinMode)

	// Extraction history is optional
	var store service.ExtractionStore
	if cfg.PostgreSQL.Enabled {
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.EnsureSchema(context.Background()); err != nil {
			return err
		}
		store = repo
		slog.Info("connected to PostgreSQL, extraction history enabled")
	} else {
		slog.Warn("PostgreSQL is not configured, extraction history disabled",
			"hint", "set DATABASE_URL or PG_HOST to enable it")
	}

	var cache *service.ExtractionCache
	if cfg.Cache.Size > 0 {
		cache, err = service.NewExtractionCache(cfg.Cache.Size)
		if err != nil {
			return fmt.Errorf("failed to create extraction cache: %w", err)
		}
	}

	extractor := service.NewExtractor(cfg.Extraction)
	queryService := service.NewQueryService(extractor, cache, store, slog.Default())
	defer queryService.Wait()

	queryHandler := handler.NewQueryHandler(queryService)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = strings.Split(cfg.Server.AllowedMethods, ",")
	corsConfig.AllowHeaders = strings.Split(cfg.Server.AllowedHeaders, ",")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"service":    "nestfinder-query-extractor",
			"version":    Version,
			"history":    store != nil,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	queryHandler.Register(router.Group("/api/v1"))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-quit:
	}

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	slog.Info("server stopped")
	return nil
}
