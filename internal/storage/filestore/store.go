// Package filestore keeps the Pokémon collection in a single JSON file.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
)

var _ storage.PokemonStore = (*Store)(nil)

// Store serves reads from memory and persists every mutation by atomically
// replacing the backing file with the full updated collection.
type Store struct {
	path string

	mu       sync.RWMutex
	pokemons []models.Pokemon
	// lastID is the highest id handed out or loaded, so deleted ids stay retired.
	lastID int64
}

// Open loads the collection at path. A missing file is an empty collection.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.pokemons = []models.Pokemon{}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.pokemons); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if s.pokemons == nil {
		s.pokemons = []models.Pokemon{}
	}
	for _, p := range s.pokemons {
		s.lastID = max(s.lastID, p.ID)
	}
	return s, nil
}

func (s *Store) List(_ context.Context) ([]models.Pokemon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.pokemons), nil
}

func (s *Store) Get(_ context.Context, id int64) (models.Pokemon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		return models.Pokemon{}, storage.ErrNotFound
	}
	return cloneOne(s.pokemons[i]), nil
}

func (s *Store) FindByIDs(_ context.Context, ids []int64) ([]models.Pokemon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(storage.OrderByIDs(s.pokemons, ids)), nil
}

// Create assigns the next identifier after the highest one seen since Open.
// Ids of deleted records are never handed out again.
func (s *Store) Create(_ context.Context, pokemon models.Pokemon) (models.Pokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := s.lastID
	for _, p := range s.pokemons {
		maxID = max(maxID, p.ID)
	}
	pokemon.ID = maxID + 1

	next := append(cloneAll(s.pokemons), cloneOne(pokemon))
	if err := s.commit(next); err != nil {
		return models.Pokemon{}, err
	}
	s.lastID = pokemon.ID
	return cloneOne(pokemon), nil
}

func (s *Store) Update(_ context.Context, id int64, patch models.PokemonPatch) (models.Pokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Pokemon{}, storage.ErrNotFound
	}
	next := cloneAll(s.pokemons)
	patch.Apply(&next[i])
	if err := s.commit(next); err != nil {
		return models.Pokemon{}, err
	}
	return cloneOne(next[i]), nil
}

func (s *Store) Delete(_ context.Context, id int64) (models.Pokemon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Pokemon{}, storage.ErrNotFound
	}
	removed := cloneOne(s.pokemons[i])
	next := slices.Delete(cloneAll(s.pokemons), i, i+1)
	if err := s.commit(next); err != nil {
		return models.Pokemon{}, err
	}
	return removed, nil
}

// commit writes next to disk and only then makes it visible to readers.
// Callers hold s.mu for writing.
func (s *Store) commit(next []models.Pokemon) error {
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := writeAtomic(s.path, data); err != nil {
		return err
	}
	s.pokemons = next
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.pokemons, func(p models.Pokemon) bool { return p.ID == id })
}

func cloneOne(p models.Pokemon) models.Pokemon {
	p.Type = slices.Clone(p.Type)
	return p
}

func cloneAll(in []models.Pokemon) []models.Pokemon {
	out := make([]models.Pokemon, len(in))
	for i, p := range in {
		out[i] = cloneOne(p)
	}
	return out
}
