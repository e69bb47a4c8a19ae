package ledger

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RecordFromRequest adapta el request HTTP al caso de uso RecordEntry(ctx, sess, EntryInput).
func (uc *RecordMovementUseCase) RecordFromRequest(ctx context.Context, sess entity.Session, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	mov, err := uc.RecordEntry(ctx, sess, EntryInput{
		Type:      in.Type,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Date:      in.Date,
		Worker:    in.Worker,
		Reason:    in.Reason,
	})
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(mov)
	return &out, nil
}

// ToMovementResponse convierte un movimiento del dominio al DTO de salida.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		Type:        m.Type,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Date:        m.Date,
		Worker:      m.Worker,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
	}
}
