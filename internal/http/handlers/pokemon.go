package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/http/respond"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/middleware"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models/dto"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
)

const msgPokemonNotFound = "Pokemon not found"

// PokemonHandler serves CRUD for the Pokémon collection.
type PokemonHandler struct {
	store storage.PokemonStore
}

// NewPokemonHandler constructs the handler.
func NewPokemonHandler(store storage.PokemonStore) *PokemonHandler {
	return &PokemonHandler{store: store}
}

// Register attaches the Pokémon routes to the mux.
func (h *PokemonHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/pokemons", h.handleList)
	mux.HandleFunc("GET /api/pokemons/{id}", h.handleGet)
	mux.HandleFunc("POST /api/pokemons", h.handleCreate)
	mux.HandleFunc("PUT /api/pokemons/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/pokemons/{id}", h.handleDelete)
}

func (h *PokemonHandler) handleList(w http.ResponseWriter, r *http.Request) {
	pokemons, err := h.store.List(r.Context())
	if err != nil {
		internalError(w, r, "list pokemons", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.PokemonListResponse{Pokemons: pokemons, Types: models.ElementTypes()})
}

func (h *PokemonHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, msgPokemonNotFound)
		return
	}
	pokemon, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "get pokemon", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.PokemonResponse{Pokemon: pokemon})
}

func (h *PokemonHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.PokemonPatch
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	pokemon, err := models.NewPokemon(req)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.store.Create(r.Context(), pokemon)
	if err != nil {
		h.storeError(w, r, "create pokemon", err)
		return
	}
	middleware.LoggerFrom(r.Context()).InfoContext(r.Context(), "pokemon created", "id", created.ID, "name", created.Name)
	respond.JSON(w, http.StatusCreated, dto.PokemonResponse{Pokemon: created})
}

func (h *PokemonHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, msgPokemonNotFound)
		return
	}
	var patch models.PokemonPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := patch.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.store.Update(r.Context(), id, patch)
	if err != nil {
		h.storeError(w, r, "update pokemon", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.PokemonResponse{Pokemon: updated})
}

func (h *PokemonHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respond.Error(w, http.StatusNotFound, msgPokemonNotFound)
		return
	}
	removed, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.storeError(w, r, "delete pokemon", err)
		return
	}
	middleware.LoggerFrom(r.Context()).InfoContext(r.Context(), "pokemon deleted", "id", removed.ID)
	respond.JSON(w, http.StatusOK, dto.DeletedPokemonResponse{
		Type:    "success",
		Message: "Pokemon deleted",
		Pokemon: removed,
	})
}

func (h *PokemonHandler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, msgPokemonNotFound)
	case errors.Is(err, models.ErrValidation):
		respond.Error(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, r, op, err)
	}
}

func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	middleware.LoggerFrom(r.Context()).ErrorContext(r.Context(), op+" failed", slog.Any("error", err))
	respond.Error(w, http.StatusInternalServerError, "internal server error")
}
