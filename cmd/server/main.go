package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/getSono/OpenPOS-sub000/internal/app"
	"github.com/getSono/OpenPOS-sub000/internal/broadcast"
	"github.com/getSono/OpenPOS-sub000/internal/cart"
	"github.com/getSono/OpenPOS-sub000/internal/catalog"
	"github.com/getSono/OpenPOS-sub000/internal/config"
	"github.com/getSono/OpenPOS-sub000/internal/database"
	"github.com/getSono/OpenPOS-sub000/internal/display"
	"github.com/getSono/OpenPOS-sub000/internal/domain"
	"github.com/getSono/OpenPOS-sub000/internal/kitchen"
	"github.com/getSono/OpenPOS-sub000/internal/logging"
	"github.com/getSono/OpenPOS-sub000/internal/redis"
	"github.com/getSono/OpenPOS-sub000/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return db
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set, running without the Redis cache layer")
		return nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, hub *kitchen.Hub, stopEviction func()) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()
		stopEviction()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Catalog lookups go memory -> Redis -> PostgreSQL.
	var productRepo domain.ProductRepository = database.NewProductRepo(pool)
	if redisClient != nil {
		productRepo = redis.NewProductCacheRepo(redisClient, productRepo)
	}
	cachedProducts := catalog.NewCachedRepo(productRepo, cfg.ProductCacheTTL, clock)
	stopEviction := cachedProducts.StartEvictionTimer(1 * time.Minute)

	orderRepo := database.NewOrderRepo(pool)
	userRepo := database.NewUserRepo(pool)

	// Shared state stores and their push registries
	cartRegistry := broadcast.NewRegistry()
	displayRegistry := broadcast.NewRegistry()
	stores := server.Stores{
		Cart:            cart.NewStore(broadcast.NewBroadcaster("cart", cartRegistry)),
		CartRegistry:    cartRegistry,
		Display:         display.NewStore(broadcast.NewBroadcaster("display", displayRegistry)),
		DisplayRegistry: displayRegistry,
	}

	hub := kitchen.NewHub()

	appSvc := app.NewService(cachedProducts, orderRepo, userRepo, stores.Cart, hub, clock)

	// Pass nil explicitly when Redis is disabled to avoid a typed-nil interface
	var srv *server.Server
	if redisClient != nil {
		srv = server.NewServer(cfg, appSvc, stores, hub, clock, pool, redisClient)
	} else {
		srv = server.NewServer(cfg, appSvc, stores, hub, clock, pool, nil)
	}

	done := runGracefulShutdown(srv, hub, stopEviction)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
