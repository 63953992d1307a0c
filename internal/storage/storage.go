package storage

import (
	"context"
	"errors"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// PokemonStore is the storage adapter behind the Pokémon resource.
// Implementations assign identifiers on Create.
type PokemonStore interface {
	List(ctx context.Context) ([]models.Pokemon, error)
	Get(ctx context.Context, id int64) (models.Pokemon, error)
	// FindByIDs returns the records matching ids in the order of ids.
	// Unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []int64) ([]models.Pokemon, error)
	Create(ctx context.Context, pokemon models.Pokemon) (models.Pokemon, error)
	Update(ctx context.Context, id int64, patch models.PokemonPatch) (models.Pokemon, error)
	Delete(ctx context.Context, id int64) (models.Pokemon, error)
}

// UserStore captures persistence operations needed by the auth and favorites handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	// AddFavorite appends pokemonID unless already present and returns the resulting list.
	AddFavorite(ctx context.Context, userID, pokemonID int64) ([]int64, error)
	// RemoveFavorite drops pokemonID if present and returns the resulting list.
	RemoveFavorite(ctx context.Context, userID, pokemonID int64) ([]int64, error)
}

// OrderByIDs arranges records to follow ids, dropping ids with no record.
func OrderByIDs(records []models.Pokemon, ids []int64) []models.Pokemon {
	byID := make(map[int64]models.Pokemon, len(records))
	for _, p := range records {
		byID[p.ID] = p
	}
	out := make([]models.Pokemon, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
