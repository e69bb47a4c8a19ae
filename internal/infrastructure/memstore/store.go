// Package memstore implementa los puertos de persistencia en memoria. Se usa con
// STORE_DRIVER=memory y como doble en las pruebas.
package memstore

import (
	"strings"
	"sync"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Índices compuestos que consultan los casos de uso sobre movements.
var (
	IndexMovementsByProduct = []string{"product_id", "date"}
	IndexMovementsByType    = []string{"type", "date"}
)

// Store guarda todas las colecciones bajo un único mutex.
type Store struct {
	mu        sync.RWMutex
	products  map[string]entity.Product
	movements map[string]entity.Movement
	workers   map[string]entity.Worker
	users     map[string]entity.AppUser
	seq       int64
	indexes   map[string]struct{}

	txMu sync.Mutex

	watchMu  sync.Mutex
	watchers map[string]map[int]chan struct{}
	nextID   int
}

// Option configura el store.
type Option func(*Store)

// WithoutIndexes arranca sin índices compuestos; las consultas que los necesiten fallan
// con domain.IndexRequiredError hasta llamar EnsureIndex.
func WithoutIndexes() Option {
	return func(s *Store) { s.indexes = map[string]struct{}{} }
}

// NewStore crea un store vacío con los índices de movements ya definidos.
func NewStore(opts ...Option) *Store {
	s := &Store{
		products:  map[string]entity.Product{},
		movements: map[string]entity.Movement{},
		workers:   map[string]entity.Worker{},
		users:     map[string]entity.AppUser{},
		watchers:  map[string]map[int]chan struct{}{},
	}
	s.indexes = map[string]struct{}{
		indexKey(repository.CollectionMovements, IndexMovementsByProduct): {},
		indexKey(repository.CollectionMovements, IndexMovementsByType):    {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureIndex registra un índice compuesto.
func (s *Store) EnsureIndex(collection string, fields ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes[indexKey(collection, fields)] = struct{}{}
}

func (s *Store) requireIndex(collection string, fields []string) error {
	if _, ok := s.indexes[indexKey(collection, fields)]; ok {
		return nil
	}
	return &domain.IndexRequiredError{Collection: collection, Fields: append([]string(nil), fields...)}
}

func indexKey(collection string, fields []string) string {
	return collection + ":" + strings.Join(fields, ",")
}

// Watch implementa repository.ChangeNotifier. El canal tiene un slot: varias escrituras
// seguidas se agrupan en una sola señal.
func (s *Store) Watch(collection string) (<-chan struct{}, func()) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	ch := make(chan struct{}, 1)
	id := s.nextID
	s.nextID++
	if s.watchers[collection] == nil {
		s.watchers[collection] = map[int]chan struct{}{}
	}
	s.watchers[collection][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.watchMu.Lock()
			delete(s.watchers[collection], id)
			s.watchMu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) notify(collection string) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for _, ch := range s.watchers[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

var _ repository.ChangeNotifier = (*Store)(nil)
