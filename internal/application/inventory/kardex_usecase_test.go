package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// stubPDF registra lo que recibe el generador.
type stubPDF struct {
	material *entity.Material
	txs      []*entity.Transaction
}

func (s *stubPDF) GenerateKardexPDF(_ context.Context, m *entity.Material, txs []*entity.Transaction) ([]byte, error) {
	s.material, s.txs = m, txs
	return []byte("%PDF-stub"), nil
}

func TestReconcile_DetectaDescuadre(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	require.NoError(t, f.materials.Create(context.Background(), &entity.Material{
		ID: "m1", Code: "AZU", Name: "Azúcar",
		InitialStock: dec("5"), CurrentStock: dec("10"), UnitCost: dec("1"),
		CreatedAt: now, UpdatedAt: now,
	}))

	rec, err := f.kardex.Reconcile(context.Background(), "m1")
	require.NoError(t, err)
	assert.False(t, rec.Consistent)
	assert.True(t, rec.Drift.Equal(dec("5")))
	assert.True(t, rec.ReplayedStock.Equal(dec("5")))

	_, err = f.kardex.Reconcile(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKardexPDF_OrdenCronologico(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "1")
	ctx := context.Background()
	for _, n := range []string{"1", "2", "3"} {
		_, err := f.ledger.RecordTransaction(ctx, inventory.RecordTransactionInput{
			MaterialID: "m1", Type: entity.TransactionIN, Quantity: dec(n), Notes: n,
		})
		require.NoError(t, err)
	}

	pdf := &stubPDF{}
	uc := inventory.NewKardexUseCase(f.materials, f.txs, pdf, logger.Nop())
	out, err := uc.KardexPDF(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-stub", string(out))
	require.Len(t, pdf.txs, 3)
	assert.Equal(t, "1", pdf.txs[0].Notes, "del más antiguo al más reciente")
	assert.Equal(t, "3", pdf.txs[2].Notes)
}

func TestKardexPDF_SinGenerador(t *testing.T) {
	f := newFixture(t)
	f.addMaterial(t, "m1", "AZU", "10", "1")
	_, err := f.kardex.KardexPDF(context.Background(), "m1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
