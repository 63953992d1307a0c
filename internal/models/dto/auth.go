package dto

import "github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"

type RegisterRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	Message string             `json:"message"`
	User    models.SessionUser `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
