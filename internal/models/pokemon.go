package models

import (
	"errors"
	"strings"
)

// ErrValidation marks input that does not satisfy the Pokémon schema.
var ErrValidation = errors.New("validation failed")

// Stats holds a Pokémon's base stats.
type Stats struct {
	HP             int `json:"hp" bson:"hp" validate:"min=0"`
	Attack         int `json:"attack" bson:"attack" validate:"min=0"`
	Defense        int `json:"defense" bson:"defense" validate:"min=0"`
	SpecialAttack  int `json:"specialAttack" bson:"specialAttack" validate:"min=0"`
	SpecialDefense int `json:"specialDefense" bson:"specialDefense" validate:"min=0"`
	Speed          int `json:"speed" bson:"speed" validate:"min=0"`
}

// Pokemon is a single record of the collection.
type Pokemon struct {
	ID    int64         `json:"id" bson:"_id"`
	Name  string        `json:"name" bson:"name"`
	Type  []ElementType `json:"type" bson:"type"`
	Base  Stats         `json:"base" bson:"base"`
	Image string        `json:"image" bson:"image"`
}

// PokemonPatch carries the fields supplied by a create or update request.
// A nil field was absent from the request body.
type PokemonPatch struct {
	Name  *string        `json:"name" validate:"omitempty,notblank"`
	Type  *[]ElementType `json:"type" validate:"omitempty,min=1,unique,dive,elementtype"`
	Base  *Stats         `json:"base"`
	Image *string        `json:"image" validate:"omitempty,notblank"`
}

// pokemonFields lists what a creation request must supply.
type pokemonFields struct {
	Name  *string        `json:"name" validate:"required"`
	Type  *[]ElementType `json:"type" validate:"required"`
	Base  *Stats         `json:"base" validate:"required"`
	Image *string        `json:"image" validate:"required"`
}

// Empty reports whether no field was supplied.
func (p PokemonPatch) Empty() bool {
	return p.Name == nil && p.Type == nil && p.Base == nil && p.Image == nil
}

// Validate normalizes the supplied fields in place and checks them.
func (p *PokemonPatch) Validate() error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
	if p.Type != nil {
		types := canonicalTypes(*p.Type)
		p.Type = &types
	}
	if p.Image != nil {
		image := strings.TrimSpace(*p.Image)
		p.Image = &image
	}
	return Validate(p)
}

// NewPokemon builds a record from a creation request. All fields are required.
func NewPokemon(p PokemonPatch) (Pokemon, error) {
	if err := Validate(pokemonFields{Name: p.Name, Type: p.Type, Base: p.Base, Image: p.Image}); err != nil {
		return Pokemon{}, err
	}
	if err := p.Validate(); err != nil {
		return Pokemon{}, err
	}
	var out Pokemon
	p.Apply(&out)
	return out, nil
}

// Apply overwrites the fields of target that are present in the patch.
func (p PokemonPatch) Apply(target *Pokemon) {
	if p.Name != nil {
		target.Name = *p.Name
	}
	if p.Type != nil {
		target.Type = append([]ElementType(nil), (*p.Type)...)
	}
	if p.Base != nil {
		target.Base = *p.Base
	}
	if p.Image != nil {
		target.Image = *p.Image
	}
}
