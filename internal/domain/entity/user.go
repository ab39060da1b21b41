package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User cuenta de usuario de la aplicación.
// PasswordHash es un hash bcrypt (incluye la sal en el propio string).
type User struct {
	ID            string
	Username      string // único
	PasswordHash  string
	FullName      string
	Email         string // opcional
	Role          string // admin | manager | user
	IsActive      bool
	LastLoginDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
