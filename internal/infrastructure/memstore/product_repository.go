package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo colección products.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el adaptador.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	if _, ok := r.s.products[product.ID]; ok {
		r.s.mu.Unlock()
		return domain.ErrDuplicate
	}
	r.s.products[product.ID] = *product
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionProducts)
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate equivale a GetByID; el aislamiento lo da TxRunner.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	cur, ok := r.s.products[product.ID]
	if !ok {
		r.s.mu.Unlock()
		return domain.ErrNotFound
	}
	next := *product
	next.StockActual = cur.StockActual
	r.s.products[product.ID] = next
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionProducts)
	return nil
}

func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	p, ok := r.s.products[id]
	if !ok {
		r.s.mu.Unlock()
		return domain.ErrNotFound
	}
	p.StockActual = stock
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionProducts)
	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, &p)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	if _, ok := r.s.products[id]; !ok {
		r.s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	r.s.mu.Unlock()
	r.s.notify(repository.CollectionProducts)
	return nil
}
