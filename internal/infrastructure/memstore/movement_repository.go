package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo colección movements.
type MovementRepo struct {
	s *Store
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	r.s.seq++
	m.ID = uuid.New().String()
	m.Seq = r.s.seq
	m.CreatedAt = time.Now()
	r.s.movements[m.ID] = *m
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionMovements)
	return nil
}

// Query filtra y ordena por (date DESC, seq DESC). Filtrar por producto o tipo exige el índice
// compuesto correspondiente.
func (r *MovementRepo) Query(ctx context.Context, q repository.MovementQuery) ([]*entity.Movement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if fields := requiredIndex(q); fields != nil {
		if err := r.s.requireIndex(repository.CollectionMovements, fields); err != nil {
			return nil, err
		}
	}

	out := make([]*entity.Movement, 0)
	for _, m := range r.s.movements {
		if q.ProductID != "" && m.ProductID != q.ProductID {
			continue
		}
		if q.Type != "" && m.Type != q.Type {
			continue
		}
		if q.StartDate != "" && m.Date < q.StartDate {
			continue
		}
		if q.EndDate != "" && m.Date > q.EndDate {
			continue
		}
		if q.After != nil && !after(m, *q.After) {
			continue
		}
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Seq > out[j].Seq
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func requiredIndex(q repository.MovementQuery) []string {
	switch {
	case q.ProductID != "" && q.Type != "":
		return []string{"product_id", "type", "date"}
	case q.ProductID != "":
		return IndexMovementsByProduct
	case q.Type != "":
		return IndexMovementsByType
	}
	return nil
}

// after informa si m va estrictamente después de k en el orden descendente.
func after(m entity.Movement, k repository.MovementKey) bool {
	if m.Date != k.Date {
		return m.Date < k.Date
	}
	return m.Seq < k.Seq
}

func (r *MovementRepo) ListIDsByType(ctx context.Context, movementType string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make([]string, 0)
	for id, m := range r.s.movements {
		if m.Type == movementType {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	if _, ok := r.s.movements[id]; !ok {
		r.s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(r.s.movements, id)
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionMovements)
	return nil
}
