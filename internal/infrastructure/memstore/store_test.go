package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

func seedMovements(t *testing.T, repo *MovementRepo, dates ...string) []*entity.Movement {
	t.Helper()
	out := make([]*entity.Movement, 0, len(dates))
	for _, d := range dates {
		m := &entity.Movement{Type: entity.MovementTypeIN, ProductID: "p1", ProductName: "Casco", Quantity: 1, Date: d}
		require.NoError(t, repo.Create(context.Background(), m))
		out = append(out, m)
	}
	return out
}

func TestMovementQuery_OrdenFechaYSeqDesc(t *testing.T) {
	repo := NewMovementRepository(NewStore())
	seeded := seedMovements(t, repo, "2024-03-01", "2024-03-02", "2024-03-01")

	got, err := repo.Query(context.Background(), repository.MovementQuery{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, seeded[1].ID, got[0].ID)
	assert.Equal(t, seeded[2].ID, got[1].ID) // misma fecha, insertado después
	assert.Equal(t, seeded[0].ID, got[2].ID)
}

func TestMovementQuery_KeysetYRango(t *testing.T) {
	repo := NewMovementRepository(NewStore())
	seedMovements(t, repo, "2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04")

	first, err := repo.Query(context.Background(), repository.MovementQuery{StartDate: "2024-03-02", EndDate: "2024-03-04", Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "2024-03-04", first[0].Date)

	last := first[1]
	rest, err := repo.Query(context.Background(), repository.MovementQuery{
		StartDate: "2024-03-02", EndDate: "2024-03-04", Limit: 2,
		After: &repository.MovementKey{Date: last.Date, Seq: last.Seq},
	})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "2024-03-02", rest[0].Date)
}

func TestMovementQuery_SinIndiceCompuesto(t *testing.T) {
	s := NewStore(WithoutIndexes())
	repo := NewMovementRepository(s)
	seedMovements(t, repo, "2024-03-01")

	_, err := repo.Query(context.Background(), repository.MovementQuery{ProductID: "p1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIndexRequired))
	var idxErr *domain.IndexRequiredError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, repository.CollectionMovements, idxErr.Collection)
	assert.Equal(t, IndexMovementsByProduct, idxErr.Fields)

	// Sin filtro de producto no hace falta índice.
	_, err = repo.Query(context.Background(), repository.MovementQuery{StartDate: "2024-01-01"})
	require.NoError(t, err)

	s.EnsureIndex(repository.CollectionMovements, IndexMovementsByProduct...)
	got, err := repo.Query(context.Background(), repository.MovementQuery{ProductID: "p1"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	repo := NewProductRepository(NewStore())
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "p1", Name: "Casco", StockActual: 10}))

	require.NoError(t, repo.Update(ctx, &entity.Product{ID: "p1", Name: "Casco blanco", StockActual: 999}))
	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Casco blanco", p.Name)
	assert.EqualValues(t, 10, p.StockActual)

	missing, err := repo.GetByID(ctx, "nada")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWatch_AgrupaSenales(t *testing.T) {
	s := NewStore()
	ch, stop := s.Watch(repository.CollectionProducts)
	defer stop()

	repo := NewProductRepository(s)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "a"}))
	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "b"}))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("sin señal de cambio")
	}
	select {
	case <-ch:
		t.Fatal("las señales deberían agruparse en un slot")
	default:
	}
}

func TestIdentity_FlujoCompleto(t *testing.T) {
	idp := NewIdentity(4)
	ctx := context.Background()

	created, err := idp.CreateAccount(ctx, "Ana@Obra.mx", "secreto1")
	require.NoError(t, err)

	_, err = idp.CreateAccount(ctx, "ana@obra.mx", "otro123")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	got, err := idp.Authenticate(ctx, "ana@obra.mx", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, created.SubjectID, got.SubjectID)

	_, err = idp.Authenticate(ctx, "ana@obra.mx", "mala")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, idp.EndSession(ctx, created.SubjectID))
	v, err := idp.SessionVersion(ctx, created.SubjectID)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestTxRunner_RollbackDeshaceEscrituras(t *testing.T) {
	s := NewStore()
	products := NewProductRepository(s)
	ctx := context.Background()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", Name: "Casco", StockActual: 7}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p2", Name: "Botas", StockActual: 4}))

	boom := errors.New("fallo")
	err := NewTxRunner(s).Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		require.NoError(t, movRepo.Create(ctx, &entity.Movement{Type: entity.MovementTypeOUT, ProductID: "p1", Quantity: 2, Date: "2024-03-01"}))
		require.NoError(t, productRepo.UpdateStock(ctx, "p1", 5))
		require.NoError(t, productRepo.UpdateStock(ctx, "p1", 1))
		// p2 se borra fuera de la transacción; su alta ya no puede actualizar stock.
		require.NoError(t, movRepo.Create(ctx, &entity.Movement{Type: entity.MovementTypeIN, ProductID: "p2", Quantity: 1, Date: "2024-03-01"}))
		require.NoError(t, products.Delete(ctx, "p2"))
		return errors.Join(boom, productRepo.UpdateStock(ctx, "p2", 5))
	})
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 7, p.StockActual)

	got, err := NewMovementRepository(s).Query(ctx, repository.MovementQuery{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTxRunner_CommitConservaEscrituras(t *testing.T) {
	s := NewStore()
	products := NewProductRepository(s)
	ctx := context.Background()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", Name: "Casco", StockActual: 7}))

	err := NewTxRunner(s).Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		if err := movRepo.Create(ctx, &entity.Movement{Type: entity.MovementTypeIN, ProductID: "p1", Quantity: 3, Date: "2024-03-01"}); err != nil {
			return err
		}
		return productRepo.UpdateStock(ctx, "p1", 10)
	})
	require.NoError(t, err)

	p, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 10, p.StockActual)
	got, err := NewMovementRepository(s).Query(ctx, repository.MovementQuery{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
