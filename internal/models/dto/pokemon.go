package dto

import "github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"

type PokemonListResponse struct {
	Pokemons []models.Pokemon     `json:"pokemons"`
	Types    []models.ElementType `json:"types"`
}

type PokemonResponse struct {
	Pokemon models.Pokemon `json:"pokemon"`
}

type DeletedPokemonResponse struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Pokemon models.Pokemon `json:"pokemon"`
}
