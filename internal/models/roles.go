package models

// Role names carried by users and session tokens.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
