package dto

import "time"

// CreateUserRequest entrada para que un Admin cree un usuario del sistema.
type CreateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`   // Admin | Editor | Empleado
	Status     string `json:"status"` // Active | Inactive
	Phone      string `json:"phone"`
	EmployeeID string `json:"employee_id"`
}

// UpdateUserRequest entrada para actualizar un perfil (el email no se cambia aquí).
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	Status     *string `json:"status"`
	Phone      *string `json:"phone"`
	EmployeeID *string `json:"employee_id"`
}

// RegisterRequest auto-registro: crea un usuario Empleado.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UserResponse salida de un usuario (sin credenciales).
type UserResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	Phone      string     `json:"phone,omitempty"`
	EmployeeID string     `json:"employee_id,omitempty"`
	LastActive *time.Time `json:"last_active,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
