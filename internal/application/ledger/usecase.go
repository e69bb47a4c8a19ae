package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// defaultWorker responsable de una entrada cuando no se indica y la sesión no tiene email.
const defaultWorker = "System"

// RecordMovementUseCase registra movimientos IN/OUT y mantiene stock_actual del producto.
//
// Protocolo de dos pasos:
//  1. alta del movimiento en el ledger;
//  2. escritura de stock_actual = snapshot ± cantidad.
//
// Si el paso 2 falla tras el paso 1 se devuelve *domain.PartialLedgerWriteError: el ledger y el
// contador quedan desalineados y no hay compensación. La verificación de stock suficiente usa el
// snapshot leído, no un bloqueo: dos salidas concurrentes pueden pasar ambas. Con un TxRunner
// configurado ambos pasos van en la misma transacción con la fila del producto bloqueada.
type RecordMovementUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	txRunner     TxRunner
	log          zerolog.Logger
	now          func() time.Time
}

// Option configura el caso de uso.
type Option func(*RecordMovementUseCase)

// WithTxRunner activa el modo transaccional.
func WithTxRunner(tx TxRunner) Option {
	return func(uc *RecordMovementUseCase) { uc.txRunner = tx }
}

// WithClock reemplaza el reloj (fecha por defecto de los movimientos).
func WithClock(now func() time.Time) Option {
	return func(uc *RecordMovementUseCase) { uc.now = now }
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	log zerolog.Logger,
	opts ...Option,
) *RecordMovementUseCase {
	uc := &RecordMovementUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Transactional informa si los dos pasos se ejecutan en una sola transacción.
func (uc *RecordMovementUseCase) Transactional() bool { return uc.txRunner != nil }

// EntryInput entrada para registrar un movimiento.
type EntryInput struct {
	Type      string
	ProductID string
	Quantity  int64
	Date      string // YYYY-MM-DD; vacío = hoy
	Worker    string // obligatorio en OUT; en IN por defecto el email de la sesión
	Reason    string
}

// RecordEntry valida la entrada, verifica stock suficiente en salidas y ejecuta el protocolo de dos pasos.
// Errores antes de escribir: domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrInsufficientStock.
func (uc *RecordMovementUseCase) RecordEntry(ctx context.Context, sess entity.Session, in EntryInput) (*entity.Movement, error) {
	in, err := uc.normalize(sess, in)
	if err != nil {
		return nil, err
	}

	if uc.txRunner != nil {
		var mov *entity.Movement
		err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
			product, err := productRepo.GetForUpdate(ctx, in.ProductID)
			if err != nil {
				return err
			}
			m, _, err := uc.apply(ctx, movRepo, productRepo, product, in)
			mov = m
			return err
		})
		if err != nil {
			return nil, err
		}
		uc.logAccepted(mov)
		return mov, nil
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	mov, newStock, err := uc.apply(ctx, uc.movementRepo, uc.productRepo, product, in)
	if err != nil {
		if mov != nil {
			uc.log.Error().Err(err).
				Str("movement_id", mov.ID).
				Str("product_id", mov.ProductID).
				Int64("expected_stock", newStock).
				Msg("ledger: movimiento registrado sin actualizar stock")
			return nil, &domain.PartialLedgerWriteError{
				MovementID:    mov.ID,
				ProductID:     mov.ProductID,
				ExpectedStock: newStock,
				Cause:         err,
			}
		}
		return nil, err
	}
	uc.logAccepted(mov)
	return mov, nil
}

// apply verifica el snapshot y ejecuta los dos pasos. Si el movimiento se persistió y falla
// la actualización de stock, devuelve el movimiento junto con el error.
func (uc *RecordMovementUseCase) apply(
	ctx context.Context,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	in EntryInput,
) (*entity.Movement, int64, error) {
	if product == nil {
		return nil, 0, domain.ErrNotFound
	}
	newStock := product.StockActual + in.Quantity
	if in.Type == entity.MovementTypeOUT {
		if product.StockActual < in.Quantity {
			return nil, 0, domain.ErrInsufficientStock
		}
		newStock = product.StockActual - in.Quantity
	}

	mov := &entity.Movement{
		Type:        in.Type,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    in.Quantity,
		Date:        in.Date,
		Worker:      in.Worker,
		Reason:      in.Reason,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, 0, fmt.Errorf("registrar movimiento: %w", err)
	}
	if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
		return mov, newStock, fmt.Errorf("actualizar stock: %w", err)
	}
	return mov, newStock, nil
}

func (uc *RecordMovementUseCase) normalize(sess entity.Session, in EntryInput) (EntryInput, error) {
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.Worker = strings.TrimSpace(in.Worker)
	in.Reason = strings.TrimSpace(in.Reason)
	in.Date = strings.TrimSpace(in.Date)

	if !entity.ValidMovementType(in.Type) || in.ProductID == "" || in.Quantity <= 0 {
		return in, domain.ErrInvalidInput
	}
	if in.Date == "" {
		in.Date = uc.now().Format(entity.DateLayout)
	} else if _, err := time.Parse(entity.DateLayout, in.Date); err != nil {
		return in, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeOUT:
		if in.Worker == "" {
			return in, domain.ErrInvalidInput
		}
	case entity.MovementTypeIN:
		if in.Worker == "" {
			in.Worker = sess.Email
		}
		if in.Worker == "" {
			in.Worker = defaultWorker
		}
	}
	return in, nil
}

func (uc *RecordMovementUseCase) logAccepted(mov *entity.Movement) {
	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("type", mov.Type).
		Str("product_id", mov.ProductID).
		Int64("quantity", mov.Quantity).
		Str("date", mov.Date).
		Msg("ledger: movimiento registrado")
}
