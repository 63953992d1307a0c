package dto

import "github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"

// AddFavoriteRequest uses a pointer so a missing pokemonId can be told apart from zero.
type AddFavoriteRequest struct {
	PokemonID *int64 `json:"pokemonId" validate:"required,gt=0"`
}

type FavoriteIDsResponse struct {
	Message   string  `json:"message"`
	Favorites []int64 `json:"favorites"`
}

type FavoritesResponse struct {
	Favorites []models.Pokemon `json:"favorites"`
}
