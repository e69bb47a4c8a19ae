package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate como GetByID pero bloquea el documento hasta el fin de la transacción, si la hay.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica los datos descriptivos. No toca stock_actual.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe stock_actual. Solo lo usa el motor de ledger.
	UpdateStock(ctx context.Context, id string, stock int64) error
	List(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
