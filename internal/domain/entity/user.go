package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleCajero    = "cajero"
	RoleTerapeuta = "terapeuta"
)

// User representa un usuario del sistema (solo lectura para login).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
