package entity

import "time"

// Product representa un artículo del almacén.
// StockActual solo lo modifica el motor de ledger al registrar un movimiento.
type Product struct {
	ID          string
	SKU         string // etiqueta única (no forzada en el store)
	Name        string
	Description string
	Category    string
	Unit        string // catálogo fijo, ver inventory.Units
	Location    string
	StockActual int64
	StockMinimo int64 // umbral de reorden
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
