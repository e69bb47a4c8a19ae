package history_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memstore"
)

var editor = entity.Session{UserID: "u1", Email: "editor@obra.mx", Role: entity.RoleEditor}

func seed(t *testing.T, repo repository.MovementRepository, n int, typ, productID string) {
	t.Helper()
	for i := 0; i < n; i++ {
		m := &entity.Movement{
			Type:      typ,
			ProductID: productID,
			Quantity:  1,
			Date:      fmt.Sprintf("2024-05-%02d", i%28+1),
			Worker:    "Juan",
		}
		require.NoError(t, repo.Create(context.Background(), m))
	}
}

func TestQueryHistory_PaginasDeVeinte(t *testing.T) {
	repo := memstore.NewMovementRepository(memstore.NewStore())
	seed(t, repo, 45, entity.MovementTypeIN, "p1")
	uc := history.NewHistoryUseCase(repo, 0, zerolog.Nop())
	ctx := context.Background()

	q := history.Query{StartDate: "2024-05-01", EndDate: "2024-05-31"}
	seen := map[string]bool{}
	var sizes []int
	var prev *entity.Movement
	for i := 0; i < 4; i++ {
		page, err := uc.QueryHistory(ctx, q)
		require.NoError(t, err)
		sizes = append(sizes, len(page.Items))
		for _, m := range page.Items {
			assert.False(t, seen[m.ID], "movimiento repetido entre páginas")
			seen[m.ID] = true
			if prev != nil {
				assert.True(t, prev.Date > m.Date || (prev.Date == m.Date && prev.Seq > m.Seq))
			}
			prev = m
		}
		q.Cursor = page.NextCursor
		if i == 3 {
			assert.False(t, page.HasMore)
		}
	}
	assert.Equal(t, []int{20, 20, 5, 0}, sizes)
	assert.Len(t, seen, 45)
}

func TestQueryHistory_CursorDeOtrosFiltros(t *testing.T) {
	repo := memstore.NewMovementRepository(memstore.NewStore())
	seed(t, repo, 25, entity.MovementTypeOUT, "p1")
	uc := history.NewHistoryUseCase(repo, 0, zerolog.Nop())
	ctx := context.Background()

	page, err := uc.QueryHistory(ctx, history.Query{StartDate: "2024-05-01", EndDate: "2024-05-31"})
	require.NoError(t, err)
	require.True(t, page.HasMore)

	_, err = uc.QueryHistory(ctx, history.Query{StartDate: "2024-05-02", EndDate: "2024-05-31", Cursor: page.NextCursor})
	assert.ErrorIs(t, err, domain.ErrCursorMismatch)

	_, err = uc.QueryHistory(ctx, history.Query{ProductID: "p1", StartDate: "2024-05-01", EndDate: "2024-05-31", Cursor: page.NextCursor})
	assert.ErrorIs(t, err, domain.ErrCursorMismatch)

	_, err = uc.QueryHistory(ctx, history.Query{StartDate: "2024-05-01", EndDate: "2024-05-31", Cursor: "%%%"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQueryHistory_RangoYProducto(t *testing.T) {
	repo := memstore.NewMovementRepository(memstore.NewStore())
	seed(t, repo, 10, entity.MovementTypeIN, "p1")
	seed(t, repo, 10, entity.MovementTypeIN, "p2")
	uc := history.NewHistoryUseCase(repo, 0, zerolog.Nop())
	ctx := context.Background()

	page, err := uc.QueryHistory(ctx, history.Query{ProductID: "p2", StartDate: "2024-05-03", EndDate: "2024-05-05"})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	for _, m := range page.Items {
		assert.Equal(t, "p2", m.ProductID)
	}
	assert.False(t, page.HasMore)

	for _, q := range []history.Query{
		{StartDate: "", EndDate: "2024-05-05"},
		{StartDate: "2024-05-06", EndDate: "2024-05-05"},
		{StartDate: "05/01/2024", EndDate: "2024-05-05"},
	} {
		_, err := uc.QueryHistory(ctx, q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestQueryHistory_SinIndice(t *testing.T) {
	repo := memstore.NewMovementRepository(memstore.NewStore(memstore.WithoutIndexes()))
	uc := history.NewHistoryUseCase(repo, 0, zerolog.Nop())

	_, err := uc.QueryHistory(context.Background(), history.Query{ProductID: "p1", StartDate: "2024-05-01", EndDate: "2024-05-31"})
	require.ErrorIs(t, err, domain.ErrIndexRequired)
	var idx *domain.IndexRequiredError
	require.ErrorAs(t, err, &idx)
	assert.Equal(t, []string{"product_id", "date"}, idx.Fields)
}

func TestClearHistory_SoloElTipoIndicado(t *testing.T) {
	s := memstore.NewStore()
	repo := memstore.NewMovementRepository(s)
	products := memstore.NewProductRepository(s)
	require.NoError(t, products.Create(context.Background(), &entity.Product{ID: "p1", SKU: "A", Name: "Casco", StockActual: 7}))
	seed(t, repo, 30, entity.MovementTypeIN, "p1")
	seed(t, repo, 4, entity.MovementTypeOUT, "p1")
	uc := history.NewHistoryUseCase(repo, 3, zerolog.Nop())

	n, err := uc.ClearHistory(context.Background(), editor, "in")
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	rest, err := repo.Query(context.Background(), repository.MovementQuery{})
	require.NoError(t, err)
	assert.Len(t, rest, 4)
	for _, m := range rest {
		assert.Equal(t, entity.MovementTypeOUT, m.Type)
	}
	p, err := products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 7, p.StockActual)

	n, err = uc.ClearHistory(context.Background(), editor, "IN")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClearHistory_Permisos(t *testing.T) {
	uc := history.NewHistoryUseCase(memstore.NewMovementRepository(memstore.NewStore()), 0, zerolog.Nop())

	_, err := uc.ClearHistory(context.Background(), entity.Session{Role: entity.RoleEmpleado}, "IN")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.ClearHistory(context.Background(), editor, "TRANSFER")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// flakyDelete falla el borrado de los IDs marcados.
type flakyDelete struct {
	repository.MovementRepository
	fail map[string]bool
}

func (f flakyDelete) Delete(ctx context.Context, id string) error {
	if f.fail[id] {
		return errors.New("timeout")
	}
	return f.MovementRepository.Delete(ctx, id)
}

func TestClearHistory_FalloParcial(t *testing.T) {
	repo := memstore.NewMovementRepository(memstore.NewStore())
	seed(t, repo, 10, entity.MovementTypeOUT, "p1")
	ids, err := repo.ListIDsByType(context.Background(), entity.MovementTypeOUT)
	require.NoError(t, err)
	require.Len(t, ids, 10)

	uc := history.NewHistoryUseCase(flakyDelete{repo, map[string]bool{ids[0]: true, ids[5]: true}}, 4, zerolog.Nop())
	n, err := uc.ClearHistory(context.Background(), editor, "OUT")
	require.Error(t, err)
	assert.Equal(t, 8, n)
	assert.ErrorIs(t, err, domain.ErrPartialBulkDelete)

	var bulk *domain.BulkDeleteError
	require.ErrorAs(t, err, &bulk)
	assert.Equal(t, 10, bulk.Requested)
	assert.Equal(t, 8, bulk.Deleted)
	assert.Len(t, bulk.Errs, 2)

	left, err := repo.ListIDsByType(context.Background(), entity.MovementTypeOUT)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{ids[0], ids[5]}, left)
}
