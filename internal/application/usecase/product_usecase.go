package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/access"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ProductUseCase casos de uso CRUD para productos. stock_actual solo cambia vía movimientos;
// el valor de alta es el stock inicial.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories *inventory.CategorySet
	log        zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories *inventory.CategorySet, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, log: log}
}

// Create valida y crea un producto. Unidad y categoría vacías toman los valores por defecto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" || in.StockActual < 0 || in.StockMinimo < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Unit == "" {
		in.Unit = inventory.DefaultUnit
	}
	if !inventory.ValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = inventory.DefaultCategory
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Unit:        in.Unit,
		Location:    in.Location,
		StockActual: in.StockActual,
		StockMinimo: in.StockMinimo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID. Devuelve ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update actualiza los datos descriptivos de un producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		if strings.TrimSpace(*in.SKU) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Unit != nil {
		if !inventory.ValidUnit(*in.Unit) {
			return nil, domain.ErrInvalidInput
		}
		product.Unit = *in.Unit
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.StockMinimo != nil {
		if *in.StockMinimo < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.StockMinimo = *in.StockMinimo
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List devuelve los productos que cumplen el filtro, ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context, f dto.ProductFilter) (*dto.ProductListResponse, error) {
	var status inventory.StockStatus
	if f.Status != "" {
		s, ok := inventory.ParseStockStatus(f.Status)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		status = s
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if status != "" && inventory.ClassifyStock(p.StockActual, p.StockMinimo) != status {
			continue
		}
		items = append(items, ToProductResponse(p))
	}
	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return col.CompareString(items[i].Name, items[j].Name) < 0
	})
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Delete elimina un producto. Solo Admin.
func (uc *ProductUseCase) Delete(ctx context.Context, sess entity.Session, id string) error {
	if !access.CanDelete(sess.Role, access.TargetProduct) {
		return domain.ErrForbidden
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Str("by", sess.Email).Msg("producto eliminado")
	return nil
}

// Categories devuelve el catálogo de categorías: base, presentes en productos y agregadas.
func (uc *ProductUseCase) Categories(ctx context.Context) ([]string, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	observed := make([]string, 0, len(list))
	for _, p := range list {
		observed = append(observed, p.Category)
	}
	return uc.categories.List(observed), nil
}

// AddCategory agrega una categoría local. Devuelve ErrDuplicate si ya existe.
func (uc *ProductUseCase) AddCategory(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.Categories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range current {
		if c == name {
			return nil, domain.ErrDuplicate
		}
	}
	uc.categories.Add(name)
	return uc.Categories(ctx)
}

// Units catálogo fijo de unidades.
func (uc *ProductUseCase) Units() []inventory.Unit {
	return inventory.Units
}

// ToProductResponse mapea el producto con su estado derivado.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Unit:        p.Unit,
		Location:    p.Location,
		StockActual: p.StockActual,
		StockMinimo: p.StockMinimo,
		Status:      string(inventory.ClassifyStock(p.StockActual, p.StockMinimo)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
