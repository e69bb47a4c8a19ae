package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, seq, type, product_id, product_name, quantity, to_char(date, 'YYYY-MM-DD'), worker, reason, created_at`

type compositeIndex struct {
	name   string
	fields []string
}

var (
	indexByProduct = compositeIndex{name: "movements_product_date_idx", fields: []string{"product_id", "date"}}
	indexByType    = compositeIndex{name: "movements_type_date_idx", fields: []string{"type", "date"}}
)

// IndexRegistry recuerda los índices compuestos cuya existencia ya se verificó.
// Solo se cachean los positivos: un índice creado después se detecta en la siguiente consulta.
type IndexRegistry struct {
	present sync.Map
}

// NewIndexRegistry crea un registro vacío.
func NewIndexRegistry() *IndexRegistry {
	return &IndexRegistry{}
}

func (reg *IndexRegistry) require(ctx context.Context, q Querier, idx compositeIndex) error {
	if _, ok := reg.present.Load(idx.name); ok {
		return nil
	}
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE tablename = 'movements' AND indexname = $1)`, idx.name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("verificar índice %s: %w", idx.name, err)
	}
	if !exists {
		return &domain.IndexRequiredError{Collection: repository.CollectionMovements, Fields: idx.fields}
	}
	reg.present.Store(idx.name, struct{}{})
	return nil
}

// MovementRepo ledger de movimientos sobre PostgreSQL.
type MovementRepo struct {
	q       Querier
	indexes *IndexRegistry
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier, indexes *IndexRegistry) *MovementRepo {
	if indexes == nil {
		indexes = NewIndexRegistry()
	}
	return &MovementRepo{q: q, indexes: indexes}
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.Seq, &m.Type, &m.ProductID, &m.ProductName, &m.Quantity, &m.Date,
		&m.Worker, &m.Reason, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta el movimiento; seq y created_at los asigna la base.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	m.ID = uuid.New().String()
	query := `INSERT INTO movements (id, type, product_id, product_name, quantity, date, worker, reason)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8)
		RETURNING seq, created_at`
	err := r.q.QueryRow(ctx, query, m.ID, m.Type, m.ProductID, m.ProductName, m.Quantity, m.Date, m.Worker, m.Reason).
		Scan(&m.Seq, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// Query filtra por producto, tipo y rango de fechas con paginación keyset sobre (date, seq).
func (r *MovementRepo) Query(ctx context.Context, mq repository.MovementQuery) ([]*entity.Movement, error) {
	switch {
	case mq.ProductID != "":
		if err := r.indexes.require(ctx, r.q, indexByProduct); err != nil {
			return nil, err
		}
	case mq.Type != "":
		if err := r.indexes.require(ctx, r.q, indexByType); err != nil {
			return nil, err
		}
	}

	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if mq.ProductID != "" {
		where = append(where, "product_id = "+arg(mq.ProductID))
	}
	if mq.Type != "" {
		where = append(where, "type = "+arg(mq.Type))
	}
	if mq.StartDate != "" {
		where = append(where, "date >= "+arg(mq.StartDate)+"::date")
	}
	if mq.EndDate != "" {
		where = append(where, "date <= "+arg(mq.EndDate)+"::date")
	}
	if mq.After != nil {
		where = append(where, "(date, seq) < ("+arg(mq.After.Date)+"::date, "+arg(mq.After.Seq)+")")
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + movementColumns + ` FROM movements`)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY date DESC, seq DESC")
	if mq.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(mq.Limit))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MovementRepo) ListIDsByType(ctx context.Context, movementType string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM movements WHERE type = $1 ORDER BY seq`, movementType)
	if err != nil {
		return nil, fmt.Errorf("list movement ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan movement ids: %w", err)
	}
	return ids, nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return rowsAffectedOr(tag, domain.ErrNotFound)
}
