package dto

import "time"

// RecordMovementRequest body para POST /api/movements.
type RecordMovementRequest struct {
	Type      string `json:"type"` // IN | OUT
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Date      string `json:"date,omitempty"`   // YYYY-MM-DD, por defecto hoy
	Worker    string `json:"worker,omitempty"` // obligatorio en OUT
	Reason    string `json:"reason,omitempty"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	Date        string    `json:"date"`
	Worker      string    `json:"worker"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryPageResponse página del historial de movimientos.
type HistoryPageResponse struct {
	Items      []MovementResponse `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
	HasMore    bool               `json:"has_more"`
}
