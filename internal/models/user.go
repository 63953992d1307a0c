package models

import "slices"

// User captures application-facing fields for an authenticated identity.
type User struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	Role         string  `json:"role"`
	Favorites    []int64 `json:"favorites"`
}

// Session returns the identity embedded in session tokens.
func (u User) Session() SessionUser {
	return SessionUser{ID: u.ID, Username: u.Username, Role: u.Role}
}

// HasFavorite reports whether pokemonID is already among the user's favorites.
func (u User) HasFavorite(pokemonID int64) bool {
	return slices.Contains(u.Favorites, pokemonID)
}

// SessionUser is the identity asserted by a session token.
type SessionUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
