package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505 en texto")))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://app:secret@db:5432/almacen?sslmode=disable",
		migrateURL("postgres://app:secret@db:5432/almacen?sslmode=disable"))
}

func TestRowsAffectedOr(t *testing.T) {
	sentinel := errors.New("no encontrado")
	assert.ErrorIs(t, rowsAffectedOr(pgconn.NewCommandTag("DELETE 0"), sentinel), sentinel)
	assert.NoError(t, rowsAffectedOr(pgconn.NewCommandTag("DELETE 1"), sentinel))
}

func TestMigrationsEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.Len(t, entries, 4)
}
