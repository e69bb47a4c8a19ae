package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// WorkerRepository define el puerto de persistencia para Worker.
type WorkerRepository interface {
	Create(ctx context.Context, worker *entity.Worker) error
	GetByID(ctx context.Context, id string) (*entity.Worker, error)
	Update(ctx context.Context, worker *entity.Worker) error
	List(ctx context.Context) ([]*entity.Worker, error)
	Delete(ctx context.Context, id string) error
}
