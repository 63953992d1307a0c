package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
)

// Ensure Store satisfies the storage.PokemonStore interface at compile time.
var _ storage.PokemonStore = (*Store)(nil)

// Store provides Postgres-backed persistence for the Pokémon collection.
type Store struct {
	pool *pgxpool.Pool
}

// NewPokemonStore creates a new Store and runs migrations.
func NewPokemonStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pokemons (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			types TEXT[] NOT NULL,
			base JSONB NOT NULL DEFAULT '{}',
			image TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS pokemons_name_idx ON pokemons (name);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

const selectColumns = `SELECT id, name, types, base, image FROM pokemons`

// List returns every record ordered by id.
func (s *Store) List(ctx context.Context) ([]models.Pokemon, error) {
	rows, err := s.pool.Query(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list pokemons: %w", err)
	}
	return collect(rows)
}

// Get fetches a record by id.
func (s *Store) Get(ctx context.Context, id int64) (models.Pokemon, error) {
	row := s.pool.QueryRow(ctx, selectColumns+` WHERE id = $1`, id)
	return scanPokemon(row)
}

// FindByIDs fetches the records whose ids appear in ids, ordered like ids.
func (s *Store) FindByIDs(ctx context.Context, ids []int64) ([]models.Pokemon, error) {
	if len(ids) == 0 {
		return []models.Pokemon{}, nil
	}
	rows, err := s.pool.Query(ctx, selectColumns+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("find pokemons: %w", err)
	}
	found, err := collect(rows)
	if err != nil {
		return nil, err
	}
	return storage.OrderByIDs(found, ids), nil
}

// Create inserts a new row; the id comes from the BIGSERIAL sequence.
func (s *Store) Create(ctx context.Context, pokemon models.Pokemon) (models.Pokemon, error) {
	const query = `
		INSERT INTO pokemons (name, types, base, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, types, base, image;
	`
	row := s.pool.QueryRow(ctx, query, pokemon.Name, typeNames(pokemon.Type), pokemon.Base, pokemon.Image)
	created, err := scanPokemon(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Pokemon{}, storage.ErrAlreadyExists
		}
		return models.Pokemon{}, err
	}
	return created, nil
}

// Update locks the row, merges the supplied fields and writes it back in one transaction.
func (s *Store) Update(ctx context.Context, id int64, patch models.PokemonPatch) (models.Pokemon, error) {
	var updated models.Pokemon
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		current, err := scanPokemon(tx.QueryRow(ctx, selectColumns+` WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}
		patch.Apply(&current)
		const query = `
			UPDATE pokemons SET name = $2, types = $3, base = $4, image = $5
			WHERE id = $1
			RETURNING id, name, types, base, image;
		`
		updated, err = scanPokemon(tx.QueryRow(ctx, query, id, current.Name, typeNames(current.Type), current.Base, current.Image))
		return err
	})
	if err != nil {
		return models.Pokemon{}, err
	}
	return updated, nil
}

// Delete removes a row and returns it.
func (s *Store) Delete(ctx context.Context, id int64) (models.Pokemon, error) {
	row := s.pool.QueryRow(ctx, `DELETE FROM pokemons WHERE id = $1 RETURNING id, name, types, base, image`, id)
	return scanPokemon(row)
}

func collect(rows pgx.Rows) ([]models.Pokemon, error) {
	defer rows.Close()
	out := []models.Pokemon{}
	for rows.Next() {
		p, err := scanPokemon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pokemons: %w", err)
	}
	return out, nil
}

func scanPokemon(row pgx.Row) (models.Pokemon, error) {
	var p models.Pokemon
	var types []string
	if err := row.Scan(&p.ID, &p.Name, &types, &p.Base, &p.Image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Pokemon{}, storage.ErrNotFound
		}
		return models.Pokemon{}, err
	}
	p.Type = make([]models.ElementType, len(types))
	for i, t := range types {
		p.Type[i] = models.ElementType(t)
	}
	return p, nil
}

func typeNames(types []models.ElementType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
