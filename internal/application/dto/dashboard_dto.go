package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalStock    int64             `json:"total_stock"`
	LowStockCount int               `json:"low_stock_count"`
	LowStock      []LowStockItemDTO `json:"low_stock"`

	// Últimos 90 días
	QuarterlyIn  int64 `json:"quarterly_in"`
	QuarterlyOut int64 `json:"quarterly_out"`
	QuarterlyNet int64 `json:"quarterly_net"`

	// Balance neto diario, últimos 30 días (el más antiguo primero)
	Daily30 []DailyNetDTO `json:"daily_30"`

	GeneratedAt time.Time `json:"generated_at"`
}

// LowStockItemDTO producto con stock_actual <= stock_minimo.
type LowStockItemDTO struct {
	ProductID   string `json:"product_id"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	StockActual int64  `json:"stock_actual"`
	StockMinimo int64  `json:"stock_minimo"`
	Unit        string `json:"unit"`
	Status      string `json:"status"`
}

// DailyNetDTO una barra del gráfico de balance neto.
type DailyNetDTO struct {
	Date      string          `json:"date"`
	In        int64           `json:"in"`
	Out       int64           `json:"out"`
	Net       int64           `json:"net"`
	BarHeight decimal.Decimal `json:"bar_height"` // % de la media altura del gráfico (mínimo visible 2%)
}

// ReplenishmentSuggestionDTO una fila de GET /api/dashboard/replenishment.
type ReplenishmentSuggestionDTO struct {
	ProductID          string           `json:"product_id"`
	SKU                string           `json:"sku"`
	ProductName        string           `json:"product_name"`
	Unit               string           `json:"unit"`
	CurrentStock       int64            `json:"current_stock"`
	StockMinimo        int64            `json:"stock_minimo"`
	IdealStock         int64            `json:"ideal_stock"`
	SuggestedOrderQty  int64            `json:"suggested_order_qty"`
	UnitsOutLast90Days int64            `json:"units_out_last_90_days"`
	DailyUsage         decimal.Decimal  `json:"daily_usage"`
	CoverageDays       *decimal.Decimal `json:"coverage_days,omitempty"` // ausente si no hubo salidas
	Priority           int              `json:"priority"`
}
