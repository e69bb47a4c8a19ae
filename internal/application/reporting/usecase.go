package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/live"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ReportPDFGenerator genera la representación PDF del resumen (infraestructura).
type ReportPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, summary Summary, recent []entity.Movement) ([]byte, error)
}

// reportRecentMovements movimientos listados en el PDF.
const reportRecentMovements = 50

// DashboardUseCase arma el resumen del tablero a partir de los snapshots en vivo.
// Si un feed todavía no publicó nada, lee directamente del store.
type DashboardUseCase struct {
	products     *live.Feed[entity.Product]
	movements    *live.Feed[entity.Movement]
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	pdf          ReportPDFGenerator
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso. pdf puede ser nil (sin reporte PDF).
func NewDashboardUseCase(
	products *live.Feed[entity.Product],
	movements *live.Feed[entity.Movement],
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	pdf ReportPDFGenerator,
) *DashboardUseCase {
	return &DashboardUseCase{
		products:     products,
		movements:    movements,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		pdf:          pdf,
		now:          time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	products, movements, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ToSummaryDTO(Summarize(products, movements, uc.now())), nil
}

// GetReportPDF genera el PDF del resumen con los últimos movimientos.
func (uc *DashboardUseCase) GetReportPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("reporte: generador PDF no configurado")
	}
	products, movements, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	summary := Summarize(products, movements, uc.now())
	recent := movements
	if len(recent) > reportRecentMovements {
		recent = recent[:reportRecentMovements]
	}
	return uc.pdf.GenerateSummaryPDF(ctx, summary, recent)
}

func (uc *DashboardUseCase) snapshot(ctx context.Context) ([]entity.Product, []entity.Movement, error) {
	var products []entity.Product
	if snap, ok := uc.products.Latest(); ok {
		products = snap.Items
	} else {
		loaded, err := LoadProducts(uc.productRepo)(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("reporte: productos: %w", err)
		}
		products = loaded
	}

	var movements []entity.Movement
	if snap, ok := uc.movements.Latest(); ok {
		movements = snap.Items
	} else {
		loaded, err := LoadWindow(uc.movementRepo, uc.now)(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("reporte: movimientos: %w", err)
		}
		movements = loaded
	}
	return products, movements, nil
}

// LoadProducts loader del feed de productos.
func LoadProducts(repo repository.ProductRepository) live.Loader[entity.Product] {
	return func(ctx context.Context) ([]entity.Product, error) {
		list, err := repo.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]entity.Product, 0, len(list))
		for _, p := range list {
			out = append(out, *p)
		}
		return out, nil
	}
}

// LoadWindow loader del feed de movimientos: solo la ventana trimestral, que cubre también el gráfico de 30 días.
func LoadWindow(repo repository.MovementRepository, now func() time.Time) live.Loader[entity.Movement] {
	return func(ctx context.Context) ([]entity.Movement, error) {
		cutoff := now().AddDate(0, 0, -QuarterDays).Format(entity.DateLayout)
		list, err := repo.Query(ctx, repository.MovementQuery{StartDate: cutoff})
		if err != nil {
			return nil, err
		}
		out := make([]entity.Movement, 0, len(list))
		for _, m := range list {
			out = append(out, *m)
		}
		return out, nil
	}
}

// ToSummaryDTO convierte el resumen al DTO de salida.
func ToSummaryDTO(s Summary) *dto.DashboardSummaryDTO {
	out := &dto.DashboardSummaryDTO{
		TotalStock:    s.TotalStock,
		LowStockCount: len(s.LowStock),
		LowStock:      make([]dto.LowStockItemDTO, 0, len(s.LowStock)),
		QuarterlyIn:   s.QuarterlyIn,
		QuarterlyOut:  s.QuarterlyOut,
		QuarterlyNet:  s.QuarterlyNet,
		Daily30:       make([]dto.DailyNetDTO, 0, len(s.Daily30)),
		GeneratedAt:   s.GeneratedAt,
	}
	for _, p := range s.LowStock {
		out.LowStock = append(out.LowStock, dto.LowStockItemDTO{
			ProductID:   p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			StockActual: p.StockActual,
			StockMinimo: p.StockMinimo,
			Unit:        p.Unit,
			Status:      string(LowStockStatus(p)),
		})
	}
	for _, d := range s.Daily30 {
		out.Daily30 = append(out.Daily30, dto.DailyNetDTO{
			Date: d.Date, In: d.In, Out: d.Out, Net: d.Net, BarHeight: d.BarHeight,
		})
	}
	return out
}
