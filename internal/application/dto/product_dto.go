package dto

import "time"

// CreateProductRequest entrada para crear un producto. StockActual es el stock inicial.
type CreateProductRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
	Location    string `json:"location"`
	StockActual int64  `json:"stock_actual"`
	StockMinimo int64  `json:"stock_minimo"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock_actual, que solo cambia vía movimientos).
type UpdateProductRequest struct {
	SKU         *string `json:"sku"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Unit        *string `json:"unit"`
	Location    *string `json:"location"`
	StockMinimo *int64  `json:"stock_minimo"`
}

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search   string // SKU o nombre, sin distinguir mayúsculas
	Category string
	Status   string // In Stock | Low Stock | Out of Stock
}

// ProductResponse salida de un producto con su estado derivado.
type ProductResponse struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Unit        string    `json:"unit"`
	Location    string    `json:"location"`
	StockActual int64     `json:"stock_actual"`
	StockMinimo int64     `json:"stock_minimo"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// AddCategoryRequest body para POST /api/categories.
type AddCategoryRequest struct {
	Name string `json:"name"`
}
