package reporting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

var now = time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)

func mov(typ, date string, qty int64) entity.Movement {
	return entity.Movement{Type: typ, Date: date, Quantity: qty}
}

func TestSummarize_BalanceDiario(t *testing.T) {
	movements := []entity.Movement{
		mov(entity.MovementTypeIN, "2024-06-15", 10),
		mov(entity.MovementTypeOUT, "2024-06-15", 5),
		mov(entity.MovementTypeOUT, "2024-06-10", 20),
		mov(entity.MovementTypeIN, "2024-05-01", 7), // fuera del gráfico, dentro del trimestre
	}
	s := Summarize(nil, movements, now)

	require.Len(t, s.Daily30, ChartDays)
	first, last := s.Daily30[0], s.Daily30[ChartDays-1]
	assert.Equal(t, "2024-05-17", first.Date)
	assert.Equal(t, "2024-06-15", last.Date)

	assert.EqualValues(t, 10, last.In)
	assert.EqualValues(t, 5, last.Out)
	assert.EqualValues(t, 5, last.Net)
	assert.True(t, decimal.NewFromInt(25).Equal(last.BarHeight), last.BarHeight.String())

	day10 := s.Daily30[ChartDays-6]
	assert.Equal(t, "2024-06-10", day10.Date)
	assert.EqualValues(t, -20, day10.Net)
	assert.True(t, decimal.NewFromInt(100).Equal(day10.BarHeight))

	assert.Zero(t, first.Net)
	assert.True(t, MinBarHeight.Equal(first.BarHeight))

	assert.EqualValues(t, 17, s.QuarterlyIn)
	assert.EqualValues(t, 25, s.QuarterlyOut)
	assert.EqualValues(t, -8, s.QuarterlyNet)
}

func TestSummarize_BalanceDiarioVariosMovimientosMismoDia(t *testing.T) {
	movements := []entity.Movement{
		mov(entity.MovementTypeIN, "2024-06-15", 5),
		mov(entity.MovementTypeIN, "2024-06-15", 3),
		mov(entity.MovementTypeIN, "2024-06-15", 2),
		mov(entity.MovementTypeOUT, "2024-06-15", 4),
		mov(entity.MovementTypeOUT, "2024-06-15", 1),
	}
	s := Summarize(nil, movements, now)

	last := s.Daily30[ChartDays-1]
	assert.EqualValues(t, 10, last.In)
	assert.EqualValues(t, 5, last.Out)
	assert.EqualValues(t, 5, last.Net)
	assert.True(t, decimal.NewFromInt(100).Equal(last.BarHeight), last.BarHeight.String())
	assert.EqualValues(t, 5, s.QuarterlyNet)
}

func TestSummarize_VentanaTrimestral(t *testing.T) {
	movements := []entity.Movement{
		mov(entity.MovementTypeIN, "2024-03-16", 100), // now - 91 días
		mov(entity.MovementTypeIN, "2024-03-17", 3),   // now - 90 días
	}
	s := Summarize(nil, movements, now)
	assert.EqualValues(t, 3, s.QuarterlyIn)
	assert.EqualValues(t, 3, s.QuarterlyNet)
}

func TestSummarize_SinMovimientos(t *testing.T) {
	s := Summarize(nil, nil, now)
	assert.Zero(t, s.TotalStock)
	assert.Empty(t, s.LowStock)
	require.Len(t, s.Daily30, ChartDays)
	for _, d := range s.Daily30 {
		assert.Zero(t, d.Net)
		assert.True(t, MinBarHeight.Equal(d.BarHeight))
	}
}

func TestSummarize_StockBajo(t *testing.T) {
	products := []entity.Product{
		{ID: "a", StockActual: 0, StockMinimo: 0},
		{ID: "b", StockActual: 3, StockMinimo: 3},
		{ID: "c", StockActual: 4, StockMinimo: 3},
		{ID: "d", StockActual: 1, StockMinimo: 5},
	}
	s := Summarize(products, nil, now)
	assert.EqualValues(t, 8, s.TotalStock)

	ids := make([]string, 0, len(s.LowStock))
	for _, p := range s.LowStock {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "b", "d"}, ids)
	assert.Equal(t, inventory.StatusOutOfStock, LowStockStatus(s.LowStock[0]))
	assert.Equal(t, inventory.StatusLowStock, LowStockStatus(s.LowStock[1]))

	dto := ToSummaryDTO(s)
	assert.Equal(t, 3, dto.LowStockCount)
	assert.Equal(t, "Out of Stock", dto.LowStock[0].Status)
	assert.Len(t, dto.Daily30, ChartDays)
}
