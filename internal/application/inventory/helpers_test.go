package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-api/pkg/logger"
	"github.com/jhoicas/kardex-api/pkg/numparse"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// fixture almacén en memoria con los casos de uso cableados como en cmd/api.
type fixture struct {
	store     *memory.Store
	materials *memory.MaterialRepository
	txs       *memory.TransactionRepository
	ledger    *inventory.LedgerUseCase
	kitting   *inventory.KittingUseCase
	kardex    *inventory.KardexUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:     store,
		materials: memory.NewMaterialRepository(store),
		txs:       memory.NewTransactionRepository(store),
	}
	log := logger.Nop()
	f.ledger = inventory.NewLedgerUseCase(memory.NewTxRunner(store), f.materials, f.txs, numparse.NewFormatter("es"), log)
	f.kitting = inventory.NewKittingUseCase(f.ledger, memory.NewProductRepository(store), f.materials, memory.NewBOMRepository(store), 4, log)
	f.kardex = inventory.NewKardexUseCase(f.materials, f.txs, nil, log)
	return f
}

func (f *fixture) addMaterial(t *testing.T, id, code, stock, cost string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.materials.Create(context.Background(), &entity.Material{
		ID:           id,
		Code:         code,
		Name:         "Material " + code,
		Category:     entity.CategoryRawMaterial,
		CurrentStock: dec(stock),
		InitialStock: dec(stock),
		UnitCost:     dec(cost),
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
}

func (f *fixture) material(t *testing.T, id string) *entity.Material {
	t.Helper()
	m, err := f.materials.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m
}

func (f *fixture) history(t *testing.T, materialID string) []*entity.Transaction {
	t.Helper()
	txs, err := f.txs.List(context.Background(), entity.TransactionFilter{MaterialID: materialID})
	require.NoError(t, err)
	return txs
}
