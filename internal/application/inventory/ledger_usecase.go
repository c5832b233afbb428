package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/logger"
	"github.com/jhoicas/kardex-api/pkg/numparse"
	"github.com/shopspring/decimal"
)

// LedgerUseCase registra movimientos en el kardex de forma transaccional (IN, OUT, ADJ)
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type LedgerUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	txRepo       repository.TransactionRepository
	format       *numparse.Formatter
	log          *logger.Logger
	now          func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	materialRepo repository.MaterialRepository,
	txRepo repository.TransactionRepository,
	format *numparse.Formatter,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
		txRepo:       txRepo,
		format:       format,
		log:          log.Component("ledger"),
		now:          time.Now,
	}
}

// RecordTransactionInput entrada ya normalizada (las cantidades pasaron por numparse).
// Quantity es delta para IN/OUT y stock objetivo para ADJ.
type RecordTransactionInput struct {
	MaterialID    string
	Type          entity.TransactionType
	Quantity      decimal.Decimal
	Notes         string
	PurchaseTotal *decimal.Decimal
	Actor         string
}

// RecordTransaction valida, bloquea la fila del material, aplica el movimiento y guarda
// material + kardex en una sola transacción. Errores: ErrInvalidInput, ErrInvalidQuantity,
// ErrNotFound, ErrInsufficientStock (siempre sin efectos) y ErrPersistence.
func (uc *LedgerUseCase) RecordTransaction(ctx context.Context, in RecordTransactionInput) (*entity.Transaction, error) {
	if in.MaterialID == "" {
		return nil, fmt.Errorf("%w: material_id requerido", domain.ErrInvalidInput)
	}
	mv, err := inventory.NewMovement(in.Type, in.Quantity, in.PurchaseTotal)
	if err != nil {
		return nil, err
	}

	// Validar que el material exista antes de abrir la transacción
	material, err := uc.materialRepo.GetByID(ctx, in.MaterialID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	var recorded *entity.Transaction
	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		txRepo repository.TransactionRepository,
	) error {
		// El stock se lee con la fila bloqueada: la validación de OUT usa el valor vigente
		locked, err := materialRepo.GetForUpdate(ctx, in.MaterialID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		eff, err := inventory.Apply(mv, inventory.StockState{Stock: locked.CurrentStock, UnitCost: locked.UnitCost})
		if err != nil {
			return err
		}
		if err := materialRepo.UpdateStockAndCost(ctx, locked.ID, eff.After.Stock, eff.After.UnitCost); err != nil {
			return err
		}
		tx := &entity.Transaction{
			ID:             uuid.New().String(),
			MaterialID:     locked.ID,
			Type:           mv.Type(),
			Quantity:       mv.Quantity(),
			Notes:          uc.notes(in.Notes, eff),
			Actor:          in.Actor,
			PreviousStock:  eff.Before.Stock,
			ResultingStock: eff.After.Stock,
			CreatedAt:      uc.now(),
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		recorded = tx
		return nil
	})
	if err != nil {
		err = classify(err)
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.log.Warn().Str("material_id", in.MaterialID).Str("quantity", in.Quantity.String()).Msg("salida rechazada por stock insuficiente")
		}
		return nil, err
	}

	uc.log.Debug().
		Str("material_id", recorded.MaterialID).
		Str("type", string(recorded.Type)).
		Str("quantity", recorded.Quantity.String()).
		Str("stock", recorded.ResultingStock.String()).
		Msg("movimiento registrado")
	return recorded, nil
}

// ListTransactions devuelve el kardex (todo o de un material) del más reciente al más antiguo.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	if filter.MaterialID != "" {
		material, err := uc.materialRepo.GetByID(ctx, filter.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
	}
	txs, err := uc.txRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return txs, nil
}

// notes agrega la anotación de cambio de costo a las notas del usuario.
func (uc *LedgerUseCase) notes(userNotes string, eff inventory.Effect) string {
	if !eff.CostChanged {
		return userNotes
	}
	annotation := fmt.Sprintf("Costo promedio: %s → %s",
		uc.format.Format(eff.Before.UnitCost, 4), uc.format.Format(eff.After.UnitCost, 4))
	if userNotes == "" {
		return annotation
	}
	return userNotes + " | " + annotation
}

// classify deja pasar los errores de dominio y marca el resto como fallo de persistencia.
func classify(err error) error {
	for _, known := range []error{
		domain.ErrInvalidInput,
		domain.ErrInvalidQuantity,
		domain.ErrInsufficientStock,
		domain.ErrNotFound,
		domain.ErrPersistence,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
