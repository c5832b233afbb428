package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/kardex-api/internal/domain/inventory"
)

func TestRecordTransaction_EntradaConCostoPromedio(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "100", "2.00")

	tx, err := f.ledger.RecordTransaction(context.Background(), inventory.RecordTransactionInput{
		MaterialID:    "m1",
		Type:          entity.TransactionIN,
		Quantity:      dec("50"),
		PurchaseTotal: ptr(dec("120")),
		Notes:         "Compra proveedor",
		Actor:         "ana",
	})
	require.NoError(t, err)

	m := f.material(t, "m1")
	assert.True(t, m.CurrentStock.Equal(dec("150")))
	assert.Equal(t, "2.1333", m.UnitCost.StringFixed(4))

	assert.True(t, tx.PreviousStock.Equal(dec("100")))
	assert.True(t, tx.ResultingStock.Equal(dec("150")))
	assert.Equal(t, "ana", tx.Actor)
	assert.Contains(t, tx.Notes, "Compra proveedor | Costo promedio: 2,0000 → 2,1333")
}

func TestRecordTransaction_EntradaSinValorNoCambiaCosto(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "3")

	tx, err := f.ledger.RecordTransaction(context.Background(), inventory.RecordTransactionInput{
		MaterialID: "m1", Type: entity.TransactionIN, Quantity: dec("5"),
	})
	require.NoError(t, err)
	assert.Empty(t, tx.Notes)
	assert.True(t, f.material(t, "m1").UnitCost.Equal(dec("3")))
}

func TestRecordTransaction_SalidaMayorAlStock(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "2")

	_, err := f.ledger.RecordTransaction(context.Background(), inventory.RecordTransactionInput{
		MaterialID: "m1", Type: entity.TransactionOUT, Quantity: dec("15"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, f.material(t, "m1").CurrentStock.Equal(dec("10")), "sin efectos")
	assert.Empty(t, f.history(t, "m1"), "no se registra movimiento")
}

func TestRecordTransaction_AjusteFijaStockSinTocarCosto(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "2.5")

	tx, err := f.ledger.RecordTransaction(context.Background(), inventory.RecordTransactionInput{
		MaterialID: "m1", Type: entity.TransactionADJ, Quantity: dec("7"),
	})
	require.NoError(t, err)

	m := f.material(t, "m1")
	assert.True(t, m.CurrentStock.Equal(dec("7")))
	assert.True(t, m.UnitCost.Equal(dec("2.5")))
	assert.True(t, tx.Quantity.Equal(dec("7")), "ADJ guarda el stock objetivo")
	assert.True(t, tx.PreviousStock.Equal(dec("10")))
}

func TestRecordTransaction_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "2")
	ctx := context.Background()

	_, err := f.ledger.RecordTransaction(ctx, inventory.RecordTransactionInput{MaterialID: "m1", Type: entity.TransactionOUT, Quantity: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.ledger.RecordTransaction(ctx, inventory.RecordTransactionInput{MaterialID: "m1", Type: entity.TransactionADJ, Quantity: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.ledger.RecordTransaction(ctx, inventory.RecordTransactionInput{MaterialID: "nope", Type: entity.TransactionIN, Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.RecordTransaction(ctx, inventory.RecordTransactionInput{MaterialID: "", Type: entity.TransactionIN, Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, f.history(t, "m1"))
}

func TestRecordTransaction_CantidadFueraDeEscala(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "0", "0")
	ctx := context.Background()

	_, err := f.ledger.RecordTransaction(ctx, inventory.RecordTransactionInput{MaterialID: "m1", Type: entity.TransactionIN, Quantity: dec("0.12345")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "la columna guarda 4 decimales; no se redondea en silencio")

	_, err = f.ledger.RecordTransactionFromRequest(ctx, "ana", dto.RecordTransactionRequest{MaterialID: "m1", Type: "IN", Quantity: "0,12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Empty(t, f.history(t, "m1"))

	tx, err := f.ledger.RecordTransaction(ctx, inventory.RecordTransactionInput{MaterialID: "m1", Type: entity.TransactionIN, Quantity: dec("0.1235")})
	require.NoError(t, err)
	assert.True(t, tx.ResultingStock.Equal(dec("0.1235")))

	_, err = f.ledger.RecordTransaction(ctx, inventory.RecordTransactionInput{MaterialID: "m1", Type: entity.TransactionOUT, Quantity: dec("0.12349")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.True(t, f.material(t, "m1").CurrentStock.Equal(dec("0.1235")))
}

func TestRecordTransaction_FalloAlInsertarNoDejaCambios(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "2")
	f.store.SetInsertHook(func(*entity.Transaction) error { return errors.New("disco lleno") })

	_, err := f.ledger.RecordTransaction(context.Background(), inventory.RecordTransactionInput{
		MaterialID: "m1", Type: entity.TransactionIN, Quantity: dec("5"), PurchaseTotal: ptr(dec("50")),
	})
	require.ErrorIs(t, err, domain.ErrPersistence)

	m := f.material(t, "m1")
	assert.True(t, m.CurrentStock.Equal(dec("10")), "stock y kardex se confirman juntos")
	assert.True(t, m.UnitCost.Equal(dec("2")))
	assert.Empty(t, f.history(t, "m1"))
}

func TestRecordTransaction_SalidasConcurrentesNuncaDejanStockNegativo(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "1")

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, rejected := 0, 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.RecordTransaction(context.Background(), inventory.RecordTransactionInput{
				MaterialID: "m1", Type: entity.TransactionOUT, Quantity: dec("1"),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 15, rejected)
	assert.True(t, f.material(t, "m1").CurrentStock.IsZero())
	assert.Len(t, f.history(t, "m1"), 10)
}

func TestRecordTransaction_ReplayIgualaStockActual(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "2")
	ctx := context.Background()

	steps := []inventory.RecordTransactionInput{
		{MaterialID: "m1", Type: entity.TransactionIN, Quantity: dec("5")},
		{MaterialID: "m1", Type: entity.TransactionOUT, Quantity: dec("3")},
		{MaterialID: "m1", Type: entity.TransactionADJ, Quantity: dec("20")},
		{MaterialID: "m1", Type: entity.TransactionOUT, Quantity: dec("2.5")},
	}
	for _, in := range steps {
		_, err := f.ledger.RecordTransaction(ctx, in)
		require.NoError(t, err)
	}

	m := f.material(t, "m1")
	assert.True(t, m.CurrentStock.Equal(dec("17.5")))
	assert.True(t, domaininv.ReplayStock(m.InitialStock, f.history(t, "m1")).Equal(m.CurrentStock))

	rec, err := f.kardex.Reconcile(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.Equal(t, 4, rec.Transactions)
}

func TestListTransactions_OrdenMasRecientePrimero(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "2")
	f.addMaterial(t, "m2", "SAL", "10", "2")
	ctx := context.Background()

	for _, in := range []inventory.RecordTransactionInput{
		{MaterialID: "m1", Type: entity.TransactionIN, Quantity: dec("1"), Notes: "primero"},
		{MaterialID: "m2", Type: entity.TransactionIN, Quantity: dec("1"), Notes: "otro material"},
		{MaterialID: "m1", Type: entity.TransactionOUT, Quantity: dec("1"), Notes: "segundo"},
	} {
		_, err := f.ledger.RecordTransaction(ctx, in)
		require.NoError(t, err)
	}

	txs, err := f.ledger.ListTransactions(ctx, entity.TransactionFilter{MaterialID: "m1"})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "segundo", txs[0].Notes)
	assert.Equal(t, "primero", txs[1].Notes)

	all, err := f.ledger.ListTransactions(ctx, entity.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.ledger.ListTransactions(ctx, entity.TransactionFilter{MaterialID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Adaptador HTTP → caso de uso
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordTransactionFromRequest_FormatoLocal(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "1000", "2")

	out, err := f.ledger.RecordTransactionFromRequest(context.Background(), "ana", dto.RecordTransactionRequest{
		MaterialID: "m1",
		Type:       "out",
		Quantity:   "1.000",
	})
	require.NoError(t, err)
	assert.Equal(t, "OUT", out.Type)
	assert.True(t, out.ResultingStock.IsZero(), "1.000 son mil unidades")
}

func TestRecordTransactionFromRequest_CostoUnitario(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "0", "0")

	_, err := f.ledger.RecordTransactionFromRequest(context.Background(), "ana", dto.RecordTransactionRequest{
		MaterialID: "m1",
		Type:       "IN",
		Quantity:   "4",
		UnitCost:   "6,50",
	})
	require.NoError(t, err)
	assert.True(t, f.material(t, "m1").UnitCost.Equal(dec("6.5")), "valor de compra = 6,50 × 4")
}

func TestRecordTransactionFromRequest_Errores(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "2")
	ctx := context.Background()

	_, err := f.ledger.RecordTransactionFromRequest(ctx, "ana", dto.RecordTransactionRequest{MaterialID: "m1", Type: "IN", Quantity: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.ledger.RecordTransactionFromRequest(ctx, "ana", dto.RecordTransactionRequest{MaterialID: "m1", Type: "ADJ", Quantity: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "un ajuste vacío no pone el stock en cero")

	_, err = f.ledger.RecordTransactionFromRequest(ctx, "ana", dto.RecordTransactionRequest{MaterialID: "m1", Type: "MOVE", Quantity: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ledger.RecordTransactionFromRequest(ctx, "ana", dto.RecordTransactionRequest{MaterialID: "m1", Type: "OUT", Quantity: "1", PurchaseTotal: "10"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor de compra solo en entradas")

	assert.True(t, f.material(t, "m1").CurrentStock.Equal(dec("10")))
}

func TestListTransactionsFromRequest_Paginacion(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "2")
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.ledger.RecordTransaction(ctx, inventory.RecordTransactionInput{MaterialID: "m1", Type: entity.TransactionIN, Quantity: dec("1")})
		require.NoError(t, err)
	}

	out, err := f.ledger.ListTransactionsFromRequest(ctx, dto.ListTransactionsRequest{
		MaterialID:  "m1",
		PageRequest: dto.PageRequest{Limit: 2},
	})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 2, out.Page.Limit)

	out, err = f.ledger.ListTransactionsFromRequest(ctx, dto.ListTransactionsRequest{MaterialID: "m1"})
	require.NoError(t, err)
	assert.Len(t, out.Items, 3)
	assert.Equal(t, 100, out.Page.Limit)
}
