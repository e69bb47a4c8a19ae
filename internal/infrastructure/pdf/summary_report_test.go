package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/reporting"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestGenerateSummaryPDF(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	products := []entity.Product{
		{ID: "1", SKU: "EPP-001", Name: "Casco", StockActual: 0, StockMinimo: 5},
		{ID: "2", SKU: "HER-002", Name: "Martillo", StockActual: 20, StockMinimo: 5},
	}
	movements := []entity.Movement{
		{Type: entity.MovementTypeIN, ProductName: "Martillo", Quantity: 20, Date: "2024-05-09"},
		{Type: entity.MovementTypeOUT, ProductName: "Casco", Quantity: 3, Date: "2024-05-10", Worker: "Juan"},
	}
	summary := reporting.Summarize(products, movements, now)

	out, err := NewMarotoReportGenerator("").GenerateSummaryPDF(context.Background(), summary, movements)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
