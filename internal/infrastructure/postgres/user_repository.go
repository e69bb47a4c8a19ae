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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, role, status, phone, employee_id, last_active, created_at`

// UserRepo perfiles AppUser sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.AppUser, error) {
	var u entity.AppUser
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.Phone, &u.EmployeeID, &u.LastActive, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste el perfil con el ID fijado por el proveedor de identidad.
func (r *UserRepo) Create(ctx context.Context, u *entity.AppUser) error {
	_, err := r.q.Exec(ctx, `INSERT INTO app_users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Name, u.Email, u.Role, u.Status, u.Phone, u.EmployeeID, u.LastActive, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.AppUser, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM app_users WHERE id = $1`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.AppUser, error) {
	return r.get(ctx, `SELECT `+userColumns+` FROM app_users WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepo) get(ctx context.Context, query, arg string) (*entity.AppUser, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.AppUser) error {
	tag, err := r.q.Exec(ctx, `UPDATE app_users SET name = $2, role = $3, status = $4, phone = $5, employee_id = $6, last_active = $7 WHERE id = $1`,
		u.ID, u.Name, u.Role, u.Status, u.Phone, u.EmployeeID, u.LastActive)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return rowsAffectedOr(tag, domain.ErrUserNotFound)
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.AppUser, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM app_users ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var out []*entity.AppUser
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM app_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return rowsAffectedOr(tag, domain.ErrUserNotFound)
}
