package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
)

func newMaterialUC() (*usecase.MaterialUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewMaterialUseCase(memory.NewMaterialRepository(store)), store
}

func TestMaterialUseCase_Create(t *testing.T) {
	uc, _ := newMaterialUC()
	out, err := uc.Create(context.Background(), dto.CreateMaterialRequest{
		Code:         " ENV-01 ",
		Name:         "Envase 500ml",
		Category:     "packaging",
		InitialStock: "1.250",
		UnitCost:     "0,35",
		MinStock:     2000,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "ENV-01", out.Code)
	assert.Equal(t, entity.DefaultGroup, out.Group)
	assert.Equal(t, "und", out.Unit)
	assert.True(t, out.CurrentStock.Equal(decimal.NewFromInt(1250)))
	assert.True(t, out.UnitCost.Equal(decimal.RequireFromString("0.35")))
	assert.True(t, out.BelowMinimum)
	assert.Equal(t, "437.5", out.StockValue.String())
}

func TestMaterialUseCase_CreateErrores(t *testing.T) {
	uc, _ := newMaterialUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateMaterialRequest{Name: "Sin código"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{Code: "X", Name: "X", InitialStock: "doce"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{Code: "X", Name: "X", UnitCost: "-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{Code: "X", Name: "X", InitialStock: "0,12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "el stock admite 4 decimales")

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{Code: "X", Name: "X", UnitCost: "0,1234567"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "el costo admite 6 decimales")

	_, err = uc.Create(ctx, dto.CreateMaterialRequest{Code: "X", Name: "X"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateMaterialRequest{Code: "X", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMaterialUseCase_GetListDelete(t *testing.T) {
	uc, store := newMaterialUC()
	ctx := context.Background()

	low, err := uc.Create(ctx, dto.CreateMaterialRequest{Code: "A", Name: "A", InitialStock: 1, MinStock: 5})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateMaterialRequest{Code: "B", Name: "B", InitialStock: 10, MinStock: 5})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, low.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Code)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	below, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, below, 1)
	assert.Equal(t, "A", below[0].Code)

	// En uso por una receta → conflicto
	store.AddBOM(&entity.BOMHeader{ID: "h", ProductID: "p", Status: entity.BOMStatusActive,
		Items: []entity.BOMItem{{MaterialID: low.ID, Quantity: decimal.NewFromInt(1)}}})
	assert.ErrorIs(t, uc.Delete(ctx, low.ID), domain.ErrConflict)

	var b dto.MaterialResponse
	for _, m := range all {
		if m.Code == "B" {
			b = m
		}
	}
	require.NoError(t, uc.Delete(ctx, b.ID))
	_, err = uc.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, b.ID), domain.ErrNotFound)
}

func TestMaterialUseCase_Summary(t *testing.T) {
	uc, _ := newMaterialUC()
	ctx := context.Background()
	for _, in := range []dto.CreateMaterialRequest{
		{Code: "A", Name: "A", Group: "Empaques", InitialStock: 10, UnitCost: 2},
		{Code: "B", Name: "B", Group: "Empaques", InitialStock: 1, UnitCost: 3, MinStock: 4},
		{Code: "C", Name: "C", InitialStock: "2,5", UnitCost: 4},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	out, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Materials)
	assert.Equal(t, 1, out.BelowMinimum)
	assert.Equal(t, "33", out.StockValue.String())
	require.Len(t, out.Groups, 2)
	assert.Equal(t, entity.DefaultGroup, out.Groups[0].Group)
	assert.Equal(t, "10", out.Groups[0].StockValue.String())
	assert.Equal(t, "Empaques", out.Groups[1].Group)
	assert.Equal(t, 2, out.Groups[1].Materials)
	assert.Equal(t, "23", out.Groups[1].StockValue.String())
}
