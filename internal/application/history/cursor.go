package history

import (
	"encoding/base64"
	"encoding/json"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// cursorToken contenido del cursor opaco: posición del último registro de la página
// más los filtros con los que se obtuvo.
type cursorToken struct {
	ProductID string `json:"p,omitempty"`
	StartDate string `json:"s"`
	EndDate   string `json:"e"`
	Date      string `json:"d"`
	Seq       int64  `json:"q"`
}

func encodeCursor(q Query, key repository.MovementKey) string {
	raw, _ := json.Marshal(cursorToken{
		ProductID: q.ProductID,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Date:      key.Date,
		Seq:       key.Seq,
	})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// decodeCursor valida el cursor contra los filtros actuales. Un cursor emitido para otras
// fechas o para otro producto devuelve ErrCursorMismatch.
func decodeCursor(q Query, cursor string) (*repository.MovementKey, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var tok cursorToken
	if err := json.Unmarshal(raw, &tok); err != nil || tok.Date == "" {
		return nil, domain.ErrInvalidInput
	}
	if tok.ProductID != q.ProductID || tok.StartDate != q.StartDate || tok.EndDate != q.EndDate {
		return nil, domain.ErrCursorMismatch
	}
	return &repository.MovementKey{Date: tok.Date, Seq: tok.Seq}, nil
}
