// Package history responde consultas paginadas sobre el ledger y la limpieza masiva por tipo.
package history

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/access"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// PageSize tamaño fijo de página del historial.
const PageSize = 20

// DefaultClearConcurrency borrados simultáneos por defecto en ClearHistory.
const DefaultClearConcurrency = 16

// Query consulta del historial. ProductID y Cursor son opcionales; las fechas son inclusivas.
type Query struct {
	ProductID string
	StartDate string
	EndDate   string
	Cursor    string
}

// Page una página del historial. HasMore es heurístico: una página llena puede ser la última,
// en cuyo caso la siguiente petición devuelve una página vacía.
type Page struct {
	Items      []*entity.Movement
	NextCursor string
	HasMore    bool
}

// HistoryUseCase consultas y borrado masivo del ledger.
type HistoryUseCase struct {
	movementRepo     repository.MovementRepository
	clearConcurrency int
	log              zerolog.Logger
}

// NewHistoryUseCase construye el caso de uso. clearConcurrency <= 0 usa DefaultClearConcurrency.
func NewHistoryUseCase(movementRepo repository.MovementRepository, clearConcurrency int, log zerolog.Logger) *HistoryUseCase {
	if clearConcurrency <= 0 {
		clearConcurrency = DefaultClearConcurrency
	}
	return &HistoryUseCase{movementRepo: movementRepo, clearConcurrency: clearConcurrency, log: log}
}

// QueryHistory devuelve hasta PageSize movimientos con StartDate <= date <= EndDate (y producto, si se indica),
// ordenados por fecha descendente. Cambiar las fechas o el producto invalida el cursor (ErrCursorMismatch).
// Si el store exige un índice compuesto que no existe se devuelve domain.ErrIndexRequired.
func (uc *HistoryUseCase) QueryHistory(ctx context.Context, q Query) (*Page, error) {
	q.ProductID = strings.TrimSpace(q.ProductID)
	q.StartDate = strings.TrimSpace(q.StartDate)
	q.EndDate = strings.TrimSpace(q.EndDate)
	if err := validateRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}

	mq := repository.MovementQuery{
		ProductID: q.ProductID,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Limit:     PageSize,
	}
	if q.Cursor != "" {
		after, err := decodeCursor(q, q.Cursor)
		if err != nil {
			return nil, err
		}
		mq.After = after
	}

	items, err := uc.movementRepo.Query(ctx, mq)
	if err != nil {
		return nil, fmt.Errorf("historial: %w", err)
	}
	page := &Page{Items: items, HasMore: len(items) == PageSize}
	if len(items) > 0 {
		last := items[len(items)-1]
		page.NextCursor = encodeCursor(q, repository.MovementKey{Date: last.Date, Seq: last.Seq})
	}
	return page, nil
}

// ClearHistory elimina todos los movimientos del tipo indicado, sin límite de fechas.
// Los borrados se lanzan en paralelo (acotado) y se esperan todos; si alguno falla se devuelve
// *domain.BulkDeleteError y los ya eliminados no se restauran.
func (uc *HistoryUseCase) ClearHistory(ctx context.Context, sess entity.Session, movementType string) (int, error) {
	if !access.CanDelete(sess.Role, access.TargetMovementHistory) {
		return 0, domain.ErrForbidden
	}
	movementType = strings.ToUpper(strings.TrimSpace(movementType))
	if !entity.ValidMovementType(movementType) {
		return 0, domain.ErrInvalidInput
	}

	ids, err := uc.movementRepo.ListIDsByType(ctx, movementType)
	if err != nil {
		return 0, fmt.Errorf("historial: listar %s: %w", movementType, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var (
		mu      sync.Mutex
		deleted int
		errs    []error
	)
	var g errgroup.Group
	g.SetLimit(uc.clearConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			err := uc.movementRepo.Delete(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("movimiento %s: %w", id, err))
				return nil
			}
			deleted++
			return nil
		})
	}
	_ = g.Wait()

	uc.log.Warn().
		Str("type", movementType).
		Str("user_id", sess.UserID).
		Int("requested", len(ids)).
		Int("deleted", deleted).
		Int("failed", len(errs)).
		Msg("historial: limpieza masiva")

	if len(errs) > 0 {
		return deleted, &domain.BulkDeleteError{Requested: len(ids), Deleted: deleted, Errs: errs}
	}
	return deleted, nil
}

func validateRange(start, end string) error {
	if start == "" || end == "" {
		return domain.ErrInvalidInput
	}
	s, err := time.Parse(entity.DateLayout, start)
	if err != nil {
		return domain.ErrInvalidInput
	}
	e, err := time.Parse(entity.DateLayout, end)
	if err != nil {
		return domain.ErrInvalidInput
	}
	if e.Before(s) {
		return domain.ErrInvalidInput
	}
	return nil
}
