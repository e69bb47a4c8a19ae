package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ExportUseCase genera el CSV de movimientos de un tipo en un rango de fechas.
type ExportUseCase struct {
	movementRepo repository.MovementRepository
	now          func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(movementRepo repository.MovementRepository) *ExportUseCase {
	return &ExportUseCase{movementRepo: movementRepo, now: time.Now}
}

// File archivo generado.
type File struct {
	Name    string
	Content []byte
}

// ExportMovements devuelve el CSV de movimientos del tipo indicado con startDate <= date <= endDate
// (fechas opcionales), ordenados por fecha descendente.
func (uc *ExportUseCase) ExportMovements(ctx context.Context, movementType, startDate, endDate string) (*File, error) {
	movementType = strings.ToUpper(strings.TrimSpace(movementType))
	if !entity.ValidMovementType(movementType) {
		return nil, domain.ErrInvalidInput
	}
	for _, d := range []string{startDate, endDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(entity.DateLayout, d); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	list, err := uc.movementRepo.Query(ctx, repository.MovementQuery{
		Type:      movementType,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("exportar %s: %w", movementType, err)
	}
	return &File{
		Name:    Filename(movementType, uc.now().Format(entity.DateLayout)),
		Content: MovementsCSV(movementType, list),
	}, nil
}
