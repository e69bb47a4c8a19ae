package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo colección app_users.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el adaptador.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.AppUser) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	if _, ok := r.s.users[u.ID]; ok {
		r.s.mu.Unlock()
		return domain.ErrDuplicate
	}
	r.s.users[u.ID] = *u
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionUsers)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.AppUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.AppUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.AppUser) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	if _, ok := r.s.users[u.ID]; !ok {
		r.s.mu.Unlock()
		return domain.ErrUserNotFound
	}
	r.s.users[u.ID] = *u
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionUsers)
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.AppUser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	out := make([]*entity.AppUser, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, &u)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	if _, ok := r.s.users[id]; !ok {
		r.s.mu.Unlock()
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionUsers)
	return nil
}
