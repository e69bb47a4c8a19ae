// Package live mantiene snapshots en memoria de colecciones del store y los entrega
// a suscriptores con semántica "al menos una vez, gana el último".
package live

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Snapshot es el contenido completo de una colección en un instante.
type Snapshot[T any] struct {
	Items   []T
	Version uint64
	At      time.Time
}

// Feed guarda el último snapshot publicado y lo reparte a los suscriptores.
// Cada suscriptor tiene un buffer de un elemento: un snapshot no entregado se reemplaza por el más nuevo.
type Feed[T any] struct {
	mu      sync.Mutex
	latest  *Snapshot[T]
	version uint64
	subs    map[*Subscription[T]]struct{}
}

// NewFeed construye un feed vacío.
func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[*Subscription[T]]struct{})}
}

// Subscription canal de snapshots de un suscriptor.
type Subscription[T any] struct {
	ch   chan Snapshot[T]
	feed *Feed[T]
	once sync.Once
}

// C devuelve el canal de entrega. Se cierra al cancelar la suscripción.
func (s *Subscription[T]) C() <-chan Snapshot[T] { return s.ch }

// Close cancela la suscripción.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.feed.mu.Lock()
		delete(s.feed.subs, s)
		s.feed.mu.Unlock()
		close(s.ch)
	})
}

// Publish reemplaza el snapshot actual y lo ofrece a todos los suscriptores.
func (f *Feed[T]) Publish(items []T) Snapshot[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.version++
	snap := Snapshot[T]{Items: items, Version: f.version, At: time.Now()}
	f.latest = &snap
	for s := range f.subs {
		offer(s.ch, snap)
	}
	return snap
}

// Latest devuelve el último snapshot publicado; ok es false si todavía no hay ninguno.
func (f *Feed[T]) Latest() (Snapshot[T], bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latest == nil {
		return Snapshot[T]{}, false
	}
	return *f.latest, true
}

// Subscribe registra un suscriptor. Si ya hay un snapshot, se entrega de inmediato.
func (f *Feed[T]) Subscribe() *Subscription[T] {
	s := &Subscription[T]{ch: make(chan Snapshot[T], 1), feed: f}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[s] = struct{}{}
	if f.latest != nil {
		offer(s.ch, *f.latest)
	}
	return s
}

// offer deja snap en el buffer descartando el pendiente. Se llama con f.mu tomado.
func offer[T any](ch chan Snapshot[T], snap Snapshot[T]) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

// Loader lee la colección completa desde el store.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Sync carga la colección al iniciar y cada vez que llega una señal de cambio, publicando
// el resultado en feed. Termina cuando ctx se cancela o changes se cierra.
func Sync[T any](ctx context.Context, name string, feed *Feed[T], load Loader[T], changes <-chan struct{}, log zerolog.Logger) {
	refresh := func() {
		items, err := load(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Error().Err(err).Str("collection", name).Msg("live: recargar colección")
			}
			return
		}
		snap := feed.Publish(items)
		log.Debug().Str("collection", name).Uint64("version", snap.Version).Int("items", len(items)).Msg("live: snapshot publicado")
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			refresh()
		}
	}
}
