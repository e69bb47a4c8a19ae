package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

const workerColumns = `id, name, role, status, employee_id, last_active, created_at`

// WorkerRepo trabajadores sobre PostgreSQL.
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository construye el adaptador.
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

func scanWorker(row pgx.Row) (*entity.Worker, error) {
	var w entity.Worker
	if err := row.Scan(&w.ID, &w.Name, &w.Role, &w.Status, &w.EmployeeID, &w.LastActive, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) error {
	_, err := r.q.Exec(ctx, `INSERT INTO workers (`+workerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.Name, w.Role, w.Status, w.EmployeeID, w.LastActive, w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert worker: %w", err)
	}
	return nil
}

func (r *WorkerRepo) GetByID(ctx context.Context, id string) (*entity.Worker, error) {
	w, err := scanWorker(r.q.QueryRow(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get worker: %w", err)
	}
	return w, nil
}

func (r *WorkerRepo) Update(ctx context.Context, w *entity.Worker) error {
	tag, err := r.q.Exec(ctx, `UPDATE workers SET name = $2, role = $3, status = $4, employee_id = $5, last_active = $6 WHERE id = $1`,
		w.ID, w.Name, w.Role, w.Status, w.EmployeeID, w.LastActive)
	if err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	return rowsAffectedOr(tag, domain.ErrNotFound)
}

func (r *WorkerRepo) List(ctx context.Context) ([]*entity.Worker, error) {
	rows, err := r.q.Query(ctx, `SELECT `+workerColumns+` FROM workers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WorkerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	return rowsAffectedOr(tag, domain.ErrNotFound)
}
