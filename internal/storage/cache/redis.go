// Package cache provides a Redis read-through cache in front of a Pokémon store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
)

const (
	keyPrefix = "pokedex:pokemon:"
	keyList   = "pokedex:pokemons"
)

// Client is the subset of the go-redis API the cache relies on.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ storage.PokemonStore = (*Store)(nil)

// Store caches Get and List results of the wrapped store. Cache errors never
// fail a request: they are logged and the wrapped store answers instead.
//
// A read that loads from the wrapped store before a concurrent mutation and
// fills the cache after that mutation's invalidation leaves the older record
// cached until the TTL expires.
type Store struct {
	next   storage.PokemonStore
	client Client
	ttl    time.Duration
	log    *slog.Logger
}

// New wraps next with a cache backed by client.
func New(next storage.PokemonStore, client Client, ttl time.Duration, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{next: next, client: client, ttl: ttl, log: log}
}

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func itemKey(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

func (s *Store) List(ctx context.Context) ([]models.Pokemon, error) {
	var cached []models.Pokemon
	if s.load(ctx, keyList, &cached) {
		return cached, nil
	}
	list, err := s.next.List(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, keyList, list)
	return list, nil
}

func (s *Store) Get(ctx context.Context, id int64) (models.Pokemon, error) {
	var cached models.Pokemon
	if s.load(ctx, itemKey(id), &cached) {
		return cached, nil
	}
	p, err := s.next.Get(ctx, id)
	if err != nil {
		return models.Pokemon{}, err
	}
	s.store(ctx, itemKey(id), p)
	return p, nil
}

// FindByIDs is not cached; favorites lists are short and per user.
func (s *Store) FindByIDs(ctx context.Context, ids []int64) ([]models.Pokemon, error) {
	return s.next.FindByIDs(ctx, ids)
}

func (s *Store) Create(ctx context.Context, pokemon models.Pokemon) (models.Pokemon, error) {
	created, err := s.next.Create(ctx, pokemon)
	if err != nil {
		return models.Pokemon{}, err
	}
	s.invalidate(ctx, keyList)
	return created, nil
}

func (s *Store) Update(ctx context.Context, id int64, patch models.PokemonPatch) (models.Pokemon, error) {
	updated, err := s.next.Update(ctx, id, patch)
	if err != nil {
		return models.Pokemon{}, err
	}
	s.invalidate(ctx, keyList, itemKey(id))
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (models.Pokemon, error) {
	removed, err := s.next.Delete(ctx, id)
	if err != nil {
		return models.Pokemon{}, err
	}
	s.invalidate(ctx, keyList, itemKey(id))
	return removed, nil
}

func (s *Store) load(ctx context.Context, key string, dst any) bool {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.WarnContext(ctx, "cache entry unreadable", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.WarnContext(ctx, "cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.log.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

func (s *Store) invalidate(ctx context.Context, keys ...string) {
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.log.WarnContext(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}
