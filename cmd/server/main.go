package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/auth"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/config"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/server"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage/cache"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage/filestore"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage/memory"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage/mongo"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("pokedex api stopped", "error", err)
		os.Exit(1)
	}
}

// run owns every resource opened at startup and releases them before returning.
func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pokemons, closeStore, err := openPokemonStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init pokemon store %q: %w", cfg.PokemonStore, err)
	}
	defer closeStore()

	users, err := seedUsers(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	logger.Info("pokedex api listening", "addr", cfg.HTTPAddress(), "store", cfg.PokemonStore)
	return serve(ctx, server.New(cfg, logger, pokemons, users), 15*time.Second)
}

type httpServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs srv until it fails or ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv httpServer, grace time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}

// openPokemonStore connects the configured backend and, when REDIS_URL is set,
// puts the Redis cache in front of it.
func openPokemonStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.PokemonStore, func(), error) {
	var (
		store   storage.PokemonStore
		closers []func()
	)
	switch cfg.PokemonStore {
	case config.StoreMongo:
		s, err := mongo.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to mongo", "database", cfg.MongoDatabase)
		store = s
		closers = append(closers, func() { _ = s.Close() })
	case config.StorePostgres:
		s, err := postgres.NewPokemonStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("connected to postgres")
		store = s
		closers = append(closers, s.Close)
	case config.StoreFile:
		s, err := filestore.Open(cfg.PokemonDataFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("loaded pokemon file", "path", cfg.PokemonDataFile)
		store = s
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.PokemonStore)
	}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		logger.Info("redis cache enabled", "ttl", cfg.CacheTTL)
		store = cache.New(store, client, cfg.CacheTTL, logger)
		closers = append(closers, func() { _ = client.Close() })
	}

	return store, closeAll, nil
}

func seedUsers(adminPassword string) (*memory.UserStore, error) {
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return memory.NewUserStore(
		models.User{ID: 1, Username: "admin", PasswordHash: hash, Role: models.RoleAdmin},
		models.User{ID: 2, Username: "admin2", PasswordHash: hash, Role: models.RoleAdmin},
	), nil
}
