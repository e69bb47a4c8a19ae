package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

// WorkerRepo colección workers.
type WorkerRepo struct {
	s *Store
}

// NewWorkerRepository construye el adaptador.
func NewWorkerRepository(s *Store) *WorkerRepo {
	return &WorkerRepo{s: s}
}

func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	if _, ok := r.s.workers[w.ID]; ok {
		r.s.mu.Unlock()
		return domain.ErrDuplicate
	}
	r.s.workers[w.ID] = *w
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionWorkers)
	return nil
}

func (r *WorkerRepo) GetByID(ctx context.Context, id string) (*entity.Worker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.workers[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WorkerRepo) Update(ctx context.Context, w *entity.Worker) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	if _, ok := r.s.workers[w.ID]; !ok {
		r.s.mu.Unlock()
		return domain.ErrNotFound
	}
	r.s.workers[w.ID] = *w
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionWorkers)
	return nil
}

func (r *WorkerRepo) List(ctx context.Context) ([]*entity.Worker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	out := make([]*entity.Worker, 0, len(r.s.workers))
	for _, w := range r.s.workers {
		out = append(out, &w)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *WorkerRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	if _, ok := r.s.workers[id]; !ok {
		r.s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(r.s.workers, id)
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionWorkers)
	return nil
}
