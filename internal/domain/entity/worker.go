package entity

import "time"

// Roles de trabajador usados como filtro en el listado.
const (
	WorkerRoleOperario = "Operario"
	WorkerRoleCapataz  = "Capataz"
)

// Worker es una persona que retira o recibe material. Los movimientos lo referencian por nombre.
type Worker struct {
	ID         string
	Name       string
	Role       string
	Status     string // Active, Inactive
	EmployeeID string
	LastActive *time.Time
	CreatedAt  time.Time
}
