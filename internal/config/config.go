package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Pokémon storage backends.
const (
	StoreMongo    = "mongo"
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port string

	PokemonStore    string
	MongoURI        string
	MongoDatabase   string
	DatabaseURL     string
	PokemonDataFile string

	RedisURL string
	CacheTTL time.Duration

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	// AdminPassword is given to the seeded admin accounts.
	AdminPassword string

	CORSOrigins []string
	AssetsDir   string
	LogLevel    slog.Level
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	env := func(key, def string) string { return fallback(getenv(key), def) }

	cfg := Config{
		Port:            env("PORT", "3000"),
		PokemonStore:    strings.ToLower(env("POKEMON_STORE", StoreMongo)),
		MongoURI:        strings.TrimSpace(getenv("MONGODB_URI")),
		MongoDatabase:   env("MONGODB_DATABASE", "pokemon-api"),
		DatabaseURL:     strings.TrimSpace(getenv("DATABASE_URL")),
		PokemonDataFile: env("POKEMON_DATA_FILE", "data/pokemons.json"),
		RedisURL:        strings.TrimSpace(getenv("REDIS_URL")),
		CacheTTL:        positiveDuration(getenv("CACHE_TTL_SECONDS"), time.Second, 60*time.Second),
		JWTSecret:       strings.TrimSpace(getenv("JWT_SECRET")),
		JWTIssuer:       env("JWT_ISSUER", "pokedex-api"),
		JWTTTL:          positiveDuration(getenv("JWT_TTL_MINUTES"), time.Minute, time.Hour),
		AdminPassword:   env("ADMIN_PASSWORD", "password123"),
		CORSOrigins:     parseCSV(env("CORS_ALLOWED_ORIGINS", "*")),
		AssetsDir:       env("ASSETS_DIR", "assets"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	switch cfg.PokemonStore {
	case StoreMongo:
		if cfg.MongoURI == "" {
			return Config{}, errors.New("MONGODB_URI is required when POKEMON_STORE=mongo")
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required when POKEMON_STORE=postgres")
		}
	case StoreFile:
	default:
		return Config{}, fmt.Errorf("unknown POKEMON_STORE %q (want mongo, file or postgres)", cfg.PokemonStore)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func positiveDuration(raw string, unit, def time.Duration) time.Duration {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
		return time.Duration(n) * unit
	}
	return def
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
