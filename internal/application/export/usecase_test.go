package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memstore"
)

func TestExportMovements_FiltraTipoYRango(t *testing.T) {
	repo := memstore.NewMovementRepository(memstore.NewStore())
	ctx := context.Background()
	for _, m := range []*entity.Movement{
		{Type: entity.MovementTypeOUT, Date: "2024-06-01", ProductName: "Guantes", Quantity: 1, Worker: "Ana"},
		{Type: entity.MovementTypeOUT, Date: "2024-06-05", ProductName: "Casco", Quantity: 2, Worker: "Luis"},
		{Type: entity.MovementTypeIN, Date: "2024-06-05", ProductName: "Casco", Quantity: 9},
		{Type: entity.MovementTypeOUT, Date: "2024-07-01", ProductName: "Botas", Quantity: 1, Worker: "Ana"},
	} {
		require.NoError(t, repo.Create(ctx, m))
	}

	uc := NewExportUseCase(repo)
	uc.now = func() time.Time { return time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC) }

	file, err := uc.ExportMovements(ctx, "out", "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, "reporte_out_2024-07-02.csv", file.Name)

	lines := strings.Split(string(file.Content), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Fecha,Tipo,Producto,Cantidad,Trabajador", lines[0])
	assert.Equal(t, `"2024-06-05","SALIDA","Casco","2","Luis"`, lines[1])
	assert.Equal(t, `"2024-06-01","SALIDA","Guantes","1","Ana"`, lines[2])
}

func TestExportMovements_Validaciones(t *testing.T) {
	uc := NewExportUseCase(memstore.NewMovementRepository(memstore.NewStore()))
	_, err := uc.ExportMovements(context.Background(), "ALL", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ExportMovements(context.Background(), "IN", "2024-13-01", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportMovements_SinIndice(t *testing.T) {
	uc := NewExportUseCase(memstore.NewMovementRepository(memstore.NewStore(memstore.WithoutIndexes())))
	_, err := uc.ExportMovements(context.Background(), "IN", "", "")
	assert.ErrorIs(t, err, domain.ErrIndexRequired)
}
