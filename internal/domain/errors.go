package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrSelfDelete         = errors.New("un administrador no puede eliminar su propio usuario")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// ErrIndexRequired indica que la consulta necesita un índice compuesto que el store no tiene.
	// No es reintentable: requiere crear el índice.
	ErrIndexRequired = errors.New("la consulta requiere un índice compuesto")
	// ErrCursorMismatch: el cursor pertenece a otra combinación de filtros; hay que reiniciar en la página 1.
	ErrCursorMismatch = errors.New("cursor inválido para los filtros actuales")

	ErrPartialLedgerWrite = errors.New("movimiento registrado pero el stock del producto no se actualizó")
	ErrPartialBulkDelete  = errors.New("eliminación masiva incompleta")
)

// IndexRequiredError acompaña a ErrIndexRequired con la definición del índice faltante,
// para que el cliente pueda mostrar la acción de remediación.
type IndexRequiredError struct {
	Collection string
	Fields     []string
}

func (e *IndexRequiredError) Error() string {
	return fmt.Sprintf("%s: %s %v", ErrIndexRequired.Error(), e.Collection, e.Fields)
}

func (e *IndexRequiredError) Unwrap() error { return ErrIndexRequired }

// PartialLedgerWriteError: el paso 1 (alta del movimiento) se persistió y el paso 2
// (actualización de stock_actual) falló. El ledger y el contador quedan desalineados.
type PartialLedgerWriteError struct {
	MovementID    string
	ProductID     string
	ExpectedStock int64
	Cause         error
}

func (e *PartialLedgerWriteError) Error() string {
	return fmt.Sprintf("%s (movimiento %s, producto %s, stock esperado %d): %v",
		ErrPartialLedgerWrite.Error(), e.MovementID, e.ProductID, e.ExpectedStock, e.Cause)
}

func (e *PartialLedgerWriteError) Unwrap() []error { return []error{ErrPartialLedgerWrite, e.Cause} }

// BulkDeleteError resume una eliminación masiva donde al menos un borrado falló.
// Los registros ya eliminados no se restauran.
type BulkDeleteError struct {
	Requested int
	Deleted   int
	Errs      []error
}

func (e *BulkDeleteError) Error() string {
	return fmt.Sprintf("%s: %d de %d eliminados, %d fallidos: %v",
		ErrPartialBulkDelete.Error(), e.Deleted, e.Requested, len(e.Errs), errors.Join(e.Errs...))
}

func (e *BulkDeleteError) Unwrap() []error {
	return append([]error{ErrPartialBulkDelete}, e.Errs...)
}
