// Package reporting agrega el ledger en totales por período y detecta productos con stock bajo.
package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

const (
	// QuarterDays ventana de los totales acumulados.
	QuarterDays = 90
	// ChartDays días del gráfico de balance neto.
	ChartDays = 30
)

var (
	hundred = decimal.NewFromInt(100)
	// MinBarHeight altura mínima visible de una barra, en % de la media altura del gráfico.
	MinBarHeight = decimal.NewFromInt(2)
)

// DailyNet balance de un día del gráfico.
type DailyNet struct {
	Date      string
	In        int64
	Out       int64
	Net       int64
	BarHeight decimal.Decimal // |net| / max(1, max|net|) en %, con mínimo MinBarHeight
}

// Summary agregados del tablero.
type Summary struct {
	TotalStock   int64
	LowStock     []entity.Product // stock_actual <= stock_minimo (incluye agotados)
	QuarterlyIn  int64
	QuarterlyOut int64
	QuarterlyNet int64
	Daily30      []DailyNet // el más antiguo primero
	GeneratedAt  time.Time
}

// Summarize calcula los agregados a partir del snapshot de productos y movimientos.
// La ventana trimestral compara fechas de calendario: date >= (now - 90 días).
func Summarize(products []entity.Product, movements []entity.Movement, now time.Time) Summary {
	s := Summary{GeneratedAt: now, LowStock: []entity.Product{}}

	for _, p := range products {
		s.TotalStock += p.StockActual
		if p.StockActual <= p.StockMinimo {
			s.LowStock = append(s.LowStock, p)
		}
	}

	cutoff := now.AddDate(0, 0, -QuarterDays).Format(entity.DateLayout)
	for _, m := range movements {
		if m.Date < cutoff {
			continue
		}
		switch m.Type {
		case entity.MovementTypeIN:
			s.QuarterlyIn += m.Quantity
		case entity.MovementTypeOUT:
			s.QuarterlyOut += m.Quantity
		}
	}
	s.QuarterlyNet = s.QuarterlyIn - s.QuarterlyOut

	s.Daily30 = dailyNet(movements, now)
	return s
}

// dailyNet construye la serie de los últimos ChartDays días; los días sin movimientos tienen net = 0.
func dailyNet(movements []entity.Movement, now time.Time) []DailyNet {
	days := make([]DailyNet, ChartDays)
	index := make(map[string]int, ChartDays)
	for i := range days {
		d := now.AddDate(0, 0, -(ChartDays - 1 - i)).Format(entity.DateLayout)
		days[i].Date = d
		index[d] = i
	}
	for _, m := range movements {
		i, ok := index[m.Date]
		if !ok {
			continue
		}
		switch m.Type {
		case entity.MovementTypeIN:
			days[i].In += m.Quantity
		case entity.MovementTypeOUT:
			days[i].Out += m.Quantity
		}
	}

	var maxAbs int64 = 1
	for i := range days {
		days[i].Net = days[i].In - days[i].Out
		if a := abs(days[i].Net); a > maxAbs {
			maxAbs = a
		}
	}
	scale := decimal.NewFromInt(maxAbs)
	for i := range days {
		h := decimal.NewFromInt(abs(days[i].Net)).Mul(hundred).Div(scale).Round(2)
		if h.LessThan(MinBarHeight) {
			h = MinBarHeight
		}
		days[i].BarHeight = h
	}
	return days
}

// LowStockStatus etiqueta de un producto de la lista de stock bajo.
func LowStockStatus(p entity.Product) inventory.StockStatus {
	return inventory.ClassifyStock(p.StockActual, p.StockMinimo)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
