package inventory

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// BaseCategories catálogo base de categorías. Nunca se modifica.
var BaseCategories = []string{"EPP", "Material", "Herramienta", "Insumo"}

// DefaultCategory categoría asignada cuando el alta no indica ninguna.
const DefaultCategory = "EPP"

// CategorySet une el catálogo base, las categorías observadas en los productos y las
// agregadas durante la vida del proceso.
type CategorySet struct {
	mu    sync.RWMutex
	extra []string
}

// NewCategorySet construye un conjunto vacío de categorías agregadas.
func NewCategorySet() *CategorySet {
	return &CategorySet{}
}

// Add agrega una categoría local. Devuelve false si el nombre está vacío o ya existe
// en el catálogo base o entre las agregadas.
func (s *CategorySet) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || contains(BaseCategories, name) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if contains(s.extra, name) {
		return false
	}
	s.extra = append(s.extra, name)
	return true
}

// List devuelve la unión sin duplicados ordenada con colación en español.
// observed son las categorías presentes en los productos actuales.
func (s *CategorySet) List(observed []string) []string {
	s.mu.RLock()
	extra := append([]string(nil), s.extra...)
	s.mu.RUnlock()

	n := len(BaseCategories) + len(observed) + len(extra)
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for _, group := range [][]string{BaseCategories, observed, extra} {
		for _, c := range group {
			if c == "" {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	collate.New(language.Spanish).SortStrings(out)
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
