package handlers

import (
	"errors"
	"net/http"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/auth"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/http/respond"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/middleware"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models/dto"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
)

const msgUserNotFound = "user not found"

// FavoritesHandler manages the authenticated user's favorite Pokémon.
type FavoritesHandler struct {
	users    storage.UserStore
	pokemons storage.PokemonStore
	tokens   middleware.TokenParser
}

// NewFavoritesHandler constructs the handler.
func NewFavoritesHandler(users storage.UserStore, pokemons storage.PokemonStore, tokens middleware.TokenParser) *FavoritesHandler {
	return &FavoritesHandler{users: users, pokemons: pokemons, tokens: tokens}
}

// Register attaches the favorites routes; all of them require a token.
func (h *FavoritesHandler) Register(mux *http.ServeMux) {
	authenticated := middleware.Authenticate(h.tokens)
	mux.Handle("POST /api/favorites", authenticated(http.HandlerFunc(h.handleAdd)))
	mux.Handle("DELETE /api/favorites/{pokemonId}", authenticated(http.HandlerFunc(h.handleRemove)))
	mux.Handle("GET /api/favorites", authenticated(http.HandlerFunc(h.handleList)))
}

func (h *FavoritesHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	var req dto.AddFavoriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := models.Validate(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "pokemonId must be a positive integer")
		return
	}
	favorites, err := h.users.AddFavorite(r.Context(), user.ID, *req.PokemonID)
	if err != nil {
		h.userError(w, r, "add favorite", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FavoriteIDsResponse{Message: "pokemon added to favorites", Favorites: favorites})
}

func (h *FavoritesHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	pokemonID, ok := pathID(r, "pokemonId")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "pokemonId must be a positive integer")
		return
	}
	favorites, err := h.users.RemoveFavorite(r.Context(), user.ID, pokemonID)
	if err != nil {
		h.userError(w, r, "remove favorite", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FavoriteIDsResponse{Message: "pokemon removed from favorites", Favorites: favorites})
}

func (h *FavoritesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.UserFromContext(r.Context())
	user, err := h.users.FindByID(r.Context(), session.ID)
	if err != nil {
		h.userError(w, r, "find user", err)
		return
	}
	pokemons, err := h.pokemons.FindByIDs(r.Context(), user.Favorites)
	if err != nil {
		internalError(w, r, "resolve favorites", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.FavoritesResponse{Favorites: pokemons})
}

func (h *FavoritesHandler) userError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	internalError(w, r, op, err)
}
