package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementKey posición de un movimiento en el orden (date DESC, seq DESC).
type MovementKey struct {
	Date string
	Seq  int64
}

// MovementQuery filtros de consulta sobre el ledger. Las fechas son inclusivas y vacías = sin límite.
// Los resultados se ordenan por fecha descendente y, a igual fecha, por orden de inserción descendente.
type MovementQuery struct {
	ProductID string // igualdad; requiere índice compuesto (product_id, date)
	Type      string // igualdad
	StartDate string
	EndDate   string
	After     *MovementKey // keyset: registros estrictamente posteriores a After en el orden
	Limit     int          // 0 = sin límite
}

// MovementRepository define el puerto de persistencia del ledger. No hay Update: los movimientos son inmutables.
type MovementRepository interface {
	// Create asigna ID, Seq y CreatedAt.
	Create(ctx context.Context, movement *entity.Movement) error
	// Query devuelve domain.ErrIndexRequired (IndexRequiredError) si falta el índice compuesto.
	Query(ctx context.Context, q MovementQuery) ([]*entity.Movement, error)
	ListIDsByType(ctx context.Context, movementType string) ([]string, error)
	Delete(ctx context.Context, id string) error
}
