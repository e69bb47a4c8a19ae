package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ChangeNotifier = (*Notifier)(nil)

// Notifier reparte las notificaciones LISTEN/NOTIFY de las tablas (ver trigger notify_collection_change).
// Usa una conexión dedicada del pool y se reconecta con espera creciente.
type Notifier struct {
	pool *pgxpool.Pool
	log  zerolog.Logger

	mu     sync.Mutex
	subs   map[string]map[int]chan struct{}
	nextID int
}

// NewNotifier construye el notificador; Run lo pone a escuchar.
func NewNotifier(pool *pgxpool.Pool, log zerolog.Logger) *Notifier {
	return &Notifier{pool: pool, log: log, subs: map[string]map[int]chan struct{}{}}
}

// Watch registra un suscriptor con buffer de una señal.
func (n *Notifier) Watch(collection string) (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan struct{}, 1)
	id := n.nextID
	n.nextID++
	if n.subs[collection] == nil {
		n.subs[collection] = map[int]chan struct{}{}
	}
	n.subs[collection][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[collection], id)
			n.mu.Unlock()
			close(ch)
		})
	}
}

// Run escucha hasta que ctx se cancela.
func (n *Notifier) Run(ctx context.Context) {
	backoff := time.Second
	for ctx.Err() == nil {
		err := n.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		n.log.Warn().Err(err).Dur("retry_in", backoff).Msg("notifier: conexión LISTEN perdida")
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (n *Notifier) listen(ctx context.Context) error {
	conn, err := n.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// La conexión vuelve al pool: no debe seguir suscrita.
		if !conn.Conn().IsClosed() {
			_, _ = conn.Exec(context.Background(), "UNLISTEN *")
		}
		conn.Release()
	}()

	for _, ch := range []string{
		repository.CollectionProducts,
		repository.CollectionMovements,
		repository.CollectionWorkers,
		repository.CollectionUsers,
	} {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ch}.Sanitize()); err != nil {
			return err
		}
	}
	// Tras (re)conectar se pudieron perder eventos: forzar una recarga.
	n.broadcastAll()

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		n.broadcast(notification.Channel)
	}
}

func (n *Notifier) broadcast(collection string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (n *Notifier) broadcastAll() {
	n.mu.Lock()
	collections := make([]string, 0, len(n.subs))
	for c := range n.subs {
		collections = append(collections, c)
	}
	n.mu.Unlock()
	for _, c := range collections {
		n.broadcast(c)
	}
}
