package entity

import "time"

// Roles válidos para AppUser.
const (
	RoleAdmin    = "Admin"
	RoleEditor   = "Editor"
	RoleEmpleado = "Empleado"
)

// Estados de usuarios y trabajadores.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// AppUser es el perfil de un usuario del sistema. ID coincide con el subject id del proveedor de identidad.
type AppUser struct {
	ID         string
	Name       string
	Email      string
	Role       string // Admin, Editor, Empleado
	Status     string // Active, Inactive
	Phone      string
	EmployeeID string
	LastActive *time.Time
	CreatedAt  time.Time
}

// ValidRole informa si r es uno de los roles conocidos.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleEmpleado
}

// ValidStatus informa si s es Active o Inactive.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
