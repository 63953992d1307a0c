package models

import (
	"encoding/json"
	"strings"
)

// ElementType is one of the fixed elemental types a Pokémon can have.
type ElementType string

const (
	Normal   ElementType = "normal"
	Fire     ElementType = "fire"
	Water    ElementType = "water"
	Electric ElementType = "electric"
	Grass    ElementType = "grass"
	Ice      ElementType = "ice"
	Fighting ElementType = "fighting"
	Poison   ElementType = "poison"
	Ground   ElementType = "ground"
	Flying   ElementType = "flying"
	Psychic  ElementType = "psychic"
	Bug      ElementType = "bug"
	Rock     ElementType = "rock"
	Ghost    ElementType = "ghost"
	Dragon   ElementType = "dragon"
	Dark     ElementType = "dark"
	Steel    ElementType = "steel"
)

var elementTypes = []ElementType{
	Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground,
	Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel,
}

// ElementTypes returns the full set of valid elemental types in canonical order.
func ElementTypes() []ElementType {
	return append([]ElementType(nil), elementTypes...)
}

// UnmarshalJSON accepts any casing of a type name.
// Unknown names are kept and rejected by validation.
func (t *ElementType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = canonicalType(raw)
	return nil
}

func canonicalType(s string) ElementType {
	return ElementType(strings.ToLower(strings.TrimSpace(s)))
}

// canonicalTypes lowercases every entry. The result is never nil.
func canonicalTypes(in []ElementType) []ElementType {
	out := make([]ElementType, 0, len(in))
	for _, t := range in {
		out = append(out, canonicalType(string(t)))
	}
	return out
}
