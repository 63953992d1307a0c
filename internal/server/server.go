package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/auth"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/config"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/http/handlers"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/middleware"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, logger *slog.Logger, pokemons storage.PokemonStore, users storage.UserStore) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, logger, pokemons, users),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	return &Server{inner: httpServer}
}

// Handler builds the routed handler with the full middleware chain.
func Handler(cfg config.Config, logger *slog.Logger, pokemons storage.PokemonStore, users storage.UserStore) http.Handler {
	mux := http.NewServeMux()
	metrics := middleware.NewMetrics("pokedex")
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewPokemonHandler(pokemons).Register(mux)
	handlers.NewAuthHandler(users, tokens).Register(mux)
	handlers.NewFavoritesHandler(users, pokemons, tokens).Register(mux)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(fileOnlyFS{root: http.Dir(cfg.AssetsDir)})))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSOrigins)(handler)
	handler = metrics.Instrument(handler)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(logger)(handler)
	return handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
