package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaterialRepository define el puerto de persistencia para Material (DIP).
// Get* devuelven (nil, nil) cuando el material no existe.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByCode(ctx context.Context, code string) (*entity.Material, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	// UpdateStockAndCost solo se usa dentro de TxRunner, junto con TransactionRepository.Create.
	UpdateStockAndCost(ctx context.Context, id string, stock, unitCost decimal.Decimal) error
	List(ctx context.Context) ([]*entity.Material, error)
	// Delete falla con domain.ErrConflict si hay movimientos que referencian el material.
	Delete(ctx context.Context, id string) error
}
