package memstore

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner serializa los callbacks transaccionales del ledger. Si el callback falla se deshacen
// las escrituras que hizo: se borran los movimientos creados y se restaura el stock anterior.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) Run(ctx context.Context, fn func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	j := &txJournal{stocks: map[string]int64{}}
	err := fn(
		&txMovementRepo{MovementRepo: NewMovementRepository(r.s), j: j},
		&txProductRepo{ProductRepo: NewProductRepository(r.s), j: j},
	)
	if err != nil {
		r.rollback(j)
		return err
	}
	return nil
}

// txJournal escrituras hechas dentro de un Run.
type txJournal struct {
	movements []string
	stocks    map[string]int64 // stock previo a la primera UpdateStock de cada producto
}

// rollback no consulta el contexto: debe completarse aunque el de la petición esté cancelado.
func (r *TxRunner) rollback(j *txJournal) {
	r.s.mu.Lock()
	for _, id := range j.movements {
		delete(r.s.movements, id)
	}
	restored := false
	for id, stock := range j.stocks {
		if p, ok := r.s.products[id]; ok {
			p.StockActual = stock
			r.s.products[id] = p
			restored = true
		}
	}
	r.s.mu.Unlock()

	if len(j.movements) > 0 {
		r.s.notify(repository.CollectionMovements)
	}
	if restored {
		r.s.notify(repository.CollectionProducts)
	}
}

type txMovementRepo struct {
	*MovementRepo
	j *txJournal
}

func (r *txMovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if err := r.MovementRepo.Create(ctx, m); err != nil {
		return err
	}
	r.j.movements = append(r.j.movements, m.ID)
	return nil
}

type txProductRepo struct {
	*ProductRepo
	j *txJournal
}

func (r *txProductRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	if _, seen := r.j.stocks[id]; !seen {
		r.s.mu.RLock()
		p, ok := r.s.products[id]
		r.s.mu.RUnlock()
		if ok {
			r.j.stocks[id] = p.StockActual
		}
	}
	return r.ProductRepo.UpdateStock(ctx, id, stock)
}
