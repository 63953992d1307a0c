// Package mongo implements the Pokémon storage adapter on a MongoDB document collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
)

// Collection names.
const (
	ColPokemons = "pokemons"
	ColCounters = "counters"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "pokemon-api"

var _ storage.PokemonStore = (*Store)(nil)

// Store keeps Pokémon documents in ColPokemons. Numeric identifiers come from
// a counter document in ColCounters.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri, verifies the connection and prepares indexes and the id counter.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	if dbName == "" {
		dbName = DefaultDatabase
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := s.prepare(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// Close releases the client connection.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// prepare creates the name index and raises the counter to the largest existing id,
// so collections imported from elsewhere keep allocating fresh identifiers.
func (s *Store) prepare(ctx context.Context) error {
	_, err := s.col(ColPokemons).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create index on %s: %w", ColPokemons, err)
	}

	var top struct {
		ID int64 `bson:"_id"`
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}}).SetProjection(bson.D{{Key: "_id", Value: 1}})
	err = s.col(ColPokemons).FindOne(ctx, bson.D{}, opts).Decode(&top)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("find highest id: %w", err)
	}

	_, err = s.col(ColCounters).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: ColPokemons}},
		bson.D{{Key: "$max", Value: bson.D{{Key: "seq", Value: top.ID}}}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("init id counter: %w", err)
	}
	return nil
}

// nextID atomically increments and returns the Pokémon id counter.
func (s *Store) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.col(ColCounters).FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: ColPokemons}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate id: %w", err)
	}
	return counter.Seq, nil
}

// wrapError converts driver errors into storage errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrAlreadyExists
	}
	return err
}
