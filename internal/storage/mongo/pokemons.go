package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
)

func byID(id int64) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func (s *Store) List(ctx context.Context) ([]models.Pokemon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.find(ctx, bson.D{}, opts)
}

func (s *Store) Get(ctx context.Context, id int64) (models.Pokemon, error) {
	var p models.Pokemon
	if err := s.col(ColPokemons).FindOne(ctx, byID(id)).Decode(&p); err != nil {
		return models.Pokemon{}, wrapError(err)
	}
	return p, nil
}

func (s *Store) FindByIDs(ctx context.Context, ids []int64) ([]models.Pokemon, error) {
	if len(ids) == 0 {
		return []models.Pokemon{}, nil
	}
	found, err := s.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, err
	}
	return storage.OrderByIDs(found, ids), nil
}

func (s *Store) Create(ctx context.Context, pokemon models.Pokemon) (models.Pokemon, error) {
	id, err := s.nextID(ctx)
	if err != nil {
		return models.Pokemon{}, err
	}
	pokemon.ID = id
	if _, err := s.col(ColPokemons).InsertOne(ctx, pokemon); err != nil {
		return models.Pokemon{}, wrapError(err)
	}
	return pokemon, nil
}

// Update applies the supplied fields with a single $set and returns the new document.
func (s *Store) Update(ctx context.Context, id int64, patch models.PokemonPatch) (models.Pokemon, error) {
	set := setFields(patch)
	if len(set) == 0 {
		return s.Get(ctx, id)
	}
	var p models.Pokemon
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.col(ColPokemons).FindOneAndUpdate(ctx, byID(id), bson.D{{Key: "$set", Value: set}}, opts).Decode(&p)
	if err != nil {
		return models.Pokemon{}, wrapError(err)
	}
	return p, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (models.Pokemon, error) {
	var p models.Pokemon
	if err := s.col(ColPokemons).FindOneAndDelete(ctx, byID(id)).Decode(&p); err != nil {
		return models.Pokemon{}, wrapError(err)
	}
	return p, nil
}

func (s *Store) find(ctx context.Context, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]models.Pokemon, error) {
	cursor, err := s.col(ColPokemons).Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	out := []models.Pokemon{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func setFields(patch models.PokemonPatch) bson.D {
	var set bson.D
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Type != nil {
		set = append(set, bson.E{Key: "type", Value: *patch.Type})
	}
	if patch.Base != nil {
		set = append(set, bson.E{Key: "base", Value: *patch.Base})
	}
	if patch.Image != nil {
		set = append(set, bson.E{Key: "image", Value: *patch.Image})
	}
	return set
}
