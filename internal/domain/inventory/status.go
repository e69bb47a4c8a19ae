package inventory

// StockStatus clasificación derivada (no persistida) de un producto.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "Out of Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusInStock    StockStatus = "In Stock"
)

// ClassifyStock devuelve el estado de un producto. El orden importa: primero el cero,
// luego el umbral (stock_actual == stock_minimo > 0 es Low Stock).
func ClassifyStock(actual, minimo int64) StockStatus {
	if actual == 0 {
		return StatusOutOfStock
	}
	if actual <= minimo {
		return StatusLowStock
	}
	return StatusInStock
}

// ParseStockStatus convierte la etiqueta de un filtro en StockStatus.
func ParseStockStatus(s string) (StockStatus, bool) {
	switch StockStatus(s) {
	case StatusOutOfStock, StatusLowStock, StatusInStock:
		return StockStatus(s), true
	}
	return "", false
}
