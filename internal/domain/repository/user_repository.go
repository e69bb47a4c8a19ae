package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para los perfiles AppUser.
// El ID lo fija el proveedor de identidad antes de Create.
type UserRepository interface {
	Create(ctx context.Context, user *entity.AppUser) error
	GetByID(ctx context.Context, id string) (*entity.AppUser, error)
	GetByEmail(ctx context.Context, email string) (*entity.AppUser, error)
	Update(ctx context.Context, user *entity.AppUser) error
	List(ctx context.Context) ([]*entity.AppUser, error)
	Delete(ctx context.Context, id string) error
}
