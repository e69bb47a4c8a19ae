// Package access concentra las reglas de autorización por rol, sin comparar strings de rol
// en handlers ni casos de uso.
package access

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// Target tipo de recurso sobre el que se pide una operación destructiva.
type Target string

const (
	TargetProduct         Target = "product"
	TargetAppUser         Target = "app_user"
	TargetWorker          Target = "worker"
	TargetMovementHistory Target = "movement_history"
)

// View vista (grupo de endpoints) del tablero.
type View string

const (
	ViewMaster       View = "MASTER"
	ViewMovementsIn  View = "MOVEMENTS_IN"
	ViewMovementsOut View = "MOVEMENTS_OUT"
	ViewWorkers      View = "WORKERS"
	ViewSummary      View = "SUMMARY"
	ViewUsers        View = "USERS"
)

// CanDelete informa si el rol puede eliminar recursos del tipo indicado.
func CanDelete(role string, target Target) bool {
	switch target {
	case TargetProduct, TargetAppUser:
		return role == entity.RoleAdmin
	case TargetWorker, TargetMovementHistory:
		return role == entity.RoleAdmin || role == entity.RoleEditor
	}
	return false
}

// CanView informa si el rol puede acceder a la vista.
func CanView(role string, view View) bool {
	if !entity.ValidRole(role) {
		return false
	}
	if view == ViewUsers {
		return role == entity.RoleAdmin || role == entity.RoleEditor
	}
	return true
}

// CanManageUsers informa si el rol puede crear o editar usuarios del sistema.
func CanManageUsers(role string) bool {
	return role == entity.RoleAdmin
}
