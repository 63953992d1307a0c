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

const msgInvalidCredentials = "invalid credentials"

// AuthHandler owns register/login and the token-protected account endpoints.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	authenticated := middleware.Authenticate(h.tokens)
	adminOnly := func(next http.HandlerFunc) http.Handler {
		return authenticated(middleware.RequireRole(models.RoleAdmin)(next))
	}

	mux.HandleFunc("POST /api/register", h.handleRegister)
	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.Handle("GET /api/profile", authenticated(http.HandlerFunc(h.handleProfile)))
	mux.Handle("GET /api/admin", adminOnly(h.handleAdmin))
	mux.Handle("POST /api/logout", authenticated(http.HandlerFunc(h.handleLogout)))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := models.Validate(req); err != nil {
		respond.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}
	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		internalError(w, r, "hash password", err)
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
		Favorites:    []int64{},
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusBadRequest, "user already exists")
		default:
			internalError(w, r, "create user", err)
		}
		return
	}

	middleware.LoggerFrom(r.Context()).InfoContext(r.Context(), "user registered", "user_id", created.ID)
	respond.JSON(w, http.StatusCreated, dto.UserResponse{Message: "user created successfully", User: created.Session()})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.store.FindByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			auth.BurnPasswordCheck(req.Password)
			respond.Error(w, http.StatusBadRequest, msgInvalidCredentials)
			return
		}
		internalError(w, r, "find user", err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respond.Error(w, http.StatusBadRequest, msgInvalidCredentials)
		return
	}
	token, err := h.tokens.Generate(user)
	if err != nil {
		internalError(w, r, "generate token", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.LoginResponse{Token: token})
}

func (h *AuthHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	respond.JSON(w, http.StatusOK, dto.UserResponse{Message: "profile retrieved successfully", User: user})
}

func (h *AuthHandler) handleAdmin(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	respond.JSON(w, http.StatusOK, dto.UserResponse{Message: "admin area", User: user})
}

// handleLogout keeps no server state; clients discard the token.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "logged out successfully"})
}
