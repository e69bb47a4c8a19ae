package dto

import "time"

// WorkerRequest entrada para crear o actualizar un trabajador.
type WorkerRequest struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	EmployeeID string `json:"employee_id"`
}

// WorkerFilter filtros del listado de trabajadores.
type WorkerFilter struct {
	Search string
	Role   string
	Status string
}

// WorkerResponse salida de un trabajador.
type WorkerResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	EmployeeID string     `json:"employee_id,omitempty"`
	LastActive *time.Time `json:"last_active,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
