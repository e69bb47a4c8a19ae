package entity

import "time"

// Tipos de movimiento del ledger.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// DateLayout formato de la fecha de un movimiento (ordenable como string).
const DateLayout = "2006-01-02"

// Movement es una entrada inmutable del ledger. Nunca se actualiza; solo se elimina
// en bloque por tipo.
type Movement struct {
	ID          string
	Type        string
	ProductID   string // referencia débil, sin borrado en cascada
	ProductName string // copia al momento de escribir
	Quantity    int64  // siempre positiva; el signo lo da Type
	Date        string // YYYY-MM-DD
	Worker      string // nombre del responsable, no es FK
	Reason      string
	Seq         int64 // orden de inserción asignado por el store (desempate)
	CreatedAt   time.Time
}

// Signed devuelve la cantidad con signo: +Quantity para IN, -Quantity para OUT.
func (m Movement) Signed() int64 {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}

// ValidMovementType informa si t es IN u OUT.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}
