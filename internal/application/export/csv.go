// Package export genera los reportes descargables de movimientos.
package export

import (
	"strconv"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// defaultInReason motivo mostrado en entradas sin motivo.
const defaultInReason = "Compra"

// WriteCSV serializa filas con cabecera. Todos los campos van entre comillas dobles y las
// comillas internas se duplican; las líneas terminan en "\n".
func WriteCSV(headers []string, rows [][]string) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(field))
		}
	}
	return []byte(b.String())
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// MovementsCSV arma el reporte de entradas o salidas. La última columna es el motivo en IN
// y el trabajador en OUT.
func MovementsCSV(movementType string, movements []*entity.Movement) []byte {
	isEntry := movementType == entity.MovementTypeIN
	last, label := "Trabajador", "SALIDA"
	if isEntry {
		last, label = "Motivo", "ENTRADA"
	}
	headers := []string{"Fecha", "Tipo", "Producto", "Cantidad", last}

	rows := make([][]string, 0, len(movements))
	for _, m := range movements {
		detail := m.Worker
		if isEntry {
			detail = m.Reason
			if detail == "" {
				detail = defaultInReason
			}
		}
		rows = append(rows, []string{m.Date, label, m.ProductName, strconv.FormatInt(m.Quantity, 10), detail})
	}
	return WriteCSV(headers, rows)
}

// Filename nombre del archivo: reporte_<in|out>_<YYYY-MM-DD>.csv.
func Filename(movementType, isoDate string) string {
	return "reporte_" + strings.ToLower(movementType) + "_" + isoDate + ".csv"
}
