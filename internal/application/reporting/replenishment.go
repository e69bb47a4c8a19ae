package reporting

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

var idealFactor = decimal.NewFromFloat(1.5)

// Suggestion producto bajo el mínimo con la cantidad sugerida de pedido.
type Suggestion struct {
	Product      entity.Product
	IdealStock   int64
	SuggestedQty int64
	UnitsOut90   int64
	DailyUsage   decimal.Decimal
	CoverageDays *decimal.Decimal // nil = sin consumo en la ventana
	Priority     int              // 1 = más urgente
}

// Replenishment arma la lista de reposición a partir del snapshot. Stock ideal = ⌈1.5 × mínimo⌉
// (al menos mínimo + 1). Orden: menor cobertura en días, luego mayor consumo trimestral,
// luego mayor déficit bajo el mínimo.
func Replenishment(products []entity.Product, movements []entity.Movement, now time.Time) []Suggestion {
	cutoff := now.AddDate(0, 0, -QuarterDays).Format(entity.DateLayout)
	outByProduct := make(map[string]int64)
	for _, m := range movements {
		if m.Type == entity.MovementTypeOUT && m.Date >= cutoff {
			outByProduct[m.ProductID] += m.Quantity
		}
	}

	days := decimal.NewFromInt(QuarterDays)
	out := make([]Suggestion, 0)
	for _, p := range products {
		if p.StockActual > p.StockMinimo {
			continue
		}
		ideal := decimal.NewFromInt(p.StockMinimo).Mul(idealFactor).Ceil().IntPart()
		if ideal <= p.StockMinimo {
			ideal = p.StockMinimo + 1
		}
		s := Suggestion{
			Product:      p,
			IdealStock:   ideal,
			SuggestedQty: ideal - p.StockActual,
			UnitsOut90:   outByProduct[p.ID],
		}
		s.DailyUsage = decimal.NewFromInt(s.UnitsOut90).Div(days).Round(2)
		if s.UnitsOut90 > 0 {
			cov := decimal.NewFromInt(p.StockActual).Mul(days).Div(decimal.NewFromInt(s.UnitsOut90)).Round(1)
			s.CoverageDays = &cov
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.CoverageDays != nil && b.CoverageDays == nil:
			return true
		case a.CoverageDays == nil && b.CoverageDays != nil:
			return false
		case a.CoverageDays != nil && !a.CoverageDays.Equal(*b.CoverageDays):
			return a.CoverageDays.LessThan(*b.CoverageDays)
		}
		if a.UnitsOut90 != b.UnitsOut90 {
			return a.UnitsOut90 > b.UnitsOut90
		}
		return a.Product.StockMinimo-a.Product.StockActual > b.Product.StockMinimo-b.Product.StockActual
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out
}

// GetReplenishment lista de reposición sobre los snapshots en vivo.
func (uc *DashboardUseCase) GetReplenishment(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, movements, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	list := Replenishment(products, movements, uc.now())
	out := make([]dto.ReplenishmentSuggestionDTO, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ReplenishmentSuggestionDTO{
			ProductID:          s.Product.ID,
			SKU:                s.Product.SKU,
			ProductName:        s.Product.Name,
			Unit:               s.Product.Unit,
			CurrentStock:       s.Product.StockActual,
			StockMinimo:        s.Product.StockMinimo,
			IdealStock:         s.IdealStock,
			SuggestedOrderQty:  s.SuggestedQty,
			UnitsOutLast90Days: s.UnitsOut90,
			DailyUsage:         s.DailyUsage,
			CoverageDays:       s.CoverageDays,
			Priority:           s.Priority,
		})
	}
	return out, nil
}
