package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/domain"
)

var _ auth.IdentityProvider = (*IdentityRepo)(nil)

// IdentityRepo credenciales (hash bcrypt) y versión de sesión en la tabla identities.
type IdentityRepo struct {
	q Querier
}

// NewIdentityRepository construye el proveedor de identidad.
func NewIdentityRepository(q Querier) *IdentityRepo {
	return &IdentityRepo{q: q}
}

func (r *IdentityRepo) Authenticate(ctx context.Context, email, password string) (*auth.Identity, error) {
	var (
		id   auth.Identity
		hash string
	)
	err := r.q.QueryRow(ctx, `SELECT id, password_hash, session_version FROM identities WHERE email = lower($1)`, email).
		Scan(&id.SubjectID, &hash, &id.SessionVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &id, nil
}

func (r *IdentityRepo) CreateAccount(ctx context.Context, email, password string) (*auth.Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	id := uuid.New().String()
	_, err = r.q.Exec(ctx, `INSERT INTO identities (id, email, password_hash) VALUES ($1, lower($2), $3)`, id, email, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}
	return &auth.Identity{SubjectID: id}, nil
}

func (r *IdentityRepo) EndSession(ctx context.Context, subjectID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE identities SET session_version = session_version + 1 WHERE id = $1`, subjectID)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return rowsAffectedOr(tag, domain.ErrUserNotFound)
}

func (r *IdentityRepo) SessionVersion(ctx context.Context, subjectID string) (int, error) {
	var v int
	err := r.q.QueryRow(ctx, `SELECT session_version FROM identities WHERE id = $1`, subjectID).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("session version: %w", err)
	}
	return v, nil
}

func (r *IdentityRepo) DeleteAccount(ctx context.Context, subjectID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM identities WHERE id = $1`, subjectID)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return rowsAffectedOr(tag, domain.ErrUserNotFound)
}
