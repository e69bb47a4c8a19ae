package inventory

// Unit unidad de medida del catálogo fijo.
type Unit struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DefaultUnit unidad asignada cuando el alta no indica ninguna.
const DefaultUnit = "pza"

// Units catálogo de unidades de medida. No se extiende en tiempo de ejecución.
var Units = []Unit{
	{"pza", "Pieza (pza)"},
	{"kg", "Kilogramo (kg)"},
	{"m", "Metro (m)"},
	{"m2", "Metro Cuadrado (m²)"},
	{"m3", "Metro Cúbico (m³)"},
	{"lt", "Litro (lt)"},
	{"gal", "Galón (gal)"},
	{"caja", "Caja"},
	{"paq", "Paquete (paq)"},
	{"rollo", "Rollo"},
	{"par", "Par"},
	{"jgo", "Juego"},
	{"saco", "Saco"},
	{"kit", "Kit"},
	{"ton", "Tonelada (ton)"},
}

// ValidUnit informa si v pertenece al catálogo.
func ValidUnit(v string) bool {
	for _, u := range Units {
		if u.Value == v {
			return true
		}
	}
	return false
}
