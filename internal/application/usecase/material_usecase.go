package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/numparse"
	"github.com/shopspring/decimal"
)

// MaterialUseCase catálogo de materiales. Stock y costo solo cambian vía kardex.
type MaterialUseCase struct {
	repo repository.MaterialRepository
	now  func() time.Time
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, now: time.Now}
}

// Create da de alta un material. El stock inicial es la apertura del kardex (no genera movimiento).
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: code y name son requeridos", domain.ErrInvalidInput)
	}
	category := entity.Category(strings.TrimSpace(in.Category))
	if category == "" {
		category = entity.CategoryRawMaterial
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, in.Category)
	}
	if in.LeadTimeDays < 0 {
		return nil, fmt.Errorf("%w: lead_time_days negativo", domain.ErrInvalidInput)
	}

	var nums [4]decimal.Decimal
	for i, f := range []struct {
		name  string
		v     any
		scale int32
	}{
		{"initial_stock", in.InitialStock, inventory.QuantityScale},
		{"unit_cost", in.UnitCost, inventory.CostScale},
		{"min_stock", in.MinStock, inventory.QuantityScale},
		{"allocated", in.Allocated, inventory.QuantityScale},
	} {
		d, err := numparse.Parse(f.v)
		if err != nil {
			if errors.Is(err, numparse.ErrNotANumber) {
				return nil, fmt.Errorf("%w: %s no numérico", domain.ErrInvalidQuantity, f.name)
			}
			return nil, err
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("%w: %s negativo", domain.ErrInvalidQuantity, f.name)
		}
		if !inventory.FitsScale(d, f.scale) {
			return nil, fmt.Errorf("%w: %s admite hasta %d decimales", domain.ErrInvalidQuantity, f.name, f.scale)
		}
		nums[i] = d
	}

	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "und"
	}
	now := uc.now()
	m := &entity.Material{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		Category:     category,
		Group:        strings.TrimSpace(in.Group),
		Unit:         unit,
		CurrentStock: nums[0],
		InitialStock: nums[0],
		UnitCost:     nums[1],
		MinStock:     nums[2],
		Allocated:    nums[3],
		LeadTimeDays: in.LeadTimeDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.Group = m.GroupOrDefault()
	if err := uc.repo.Create(ctx, m); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	out := ToMaterialResponse(m)
	return &out, nil
}

// GetByID obtiene un material; ErrNotFound si no existe.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	out := ToMaterialResponse(m)
	return &out, nil
}

// List lista el catálogo. Con belowMinimum solo devuelve materiales bajo el stock mínimo.
func (uc *MaterialUseCase) List(ctx context.Context, belowMinimum bool) ([]dto.MaterialResponse, error) {
	materials, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	out := make([]dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		if belowMinimum && !m.BelowMinimum() {
			continue
		}
		out = append(out, ToMaterialResponse(m))
	}
	return out, nil
}

// Delete elimina un material sin movimientos ni uso en recetas (ErrConflict en otro caso).
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// Summary proyección del catálogo por familia. Se recalcula en cada consulta.
func (uc *MaterialUseCase) Summary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	materials, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	out := &dto.StockSummaryResponse{StockValue: decimal.Zero}
	groups := make(map[string]*dto.GroupSummaryDTO)
	for _, m := range materials {
		name := m.GroupOrDefault()
		g, ok := groups[name]
		if !ok {
			g = &dto.GroupSummaryDTO{Group: name, StockValue: decimal.Zero}
			groups[name] = g
		}
		g.Materials++
		g.StockValue = g.StockValue.Add(m.StockValue())
		out.Materials++
		out.StockValue = out.StockValue.Add(m.StockValue())
		if m.BelowMinimum() {
			g.BelowMinimum++
			out.BelowMinimum++
		}
	}
	out.Groups = make([]dto.GroupSummaryDTO, 0, len(groups))
	for _, g := range groups {
		out.Groups = append(out.Groups, *g)
	}
	sort.Slice(out.Groups, func(i, j int) bool { return out.Groups[i].Group < out.Groups[j].Group })
	return out, nil
}

// ToMaterialResponse mapea entidad a DTO con los derivados (disponible, valorización, bajo mínimo).
func ToMaterialResponse(m *entity.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		Category:     string(m.Category),
		Group:        m.GroupOrDefault(),
		Unit:         m.Unit,
		CurrentStock: m.CurrentStock,
		Allocated:    m.Allocated,
		Available:    m.Available(),
		MinStock:     m.MinStock,
		BelowMinimum: m.BelowMinimum(),
		UnitCost:     m.UnitCost,
		StockValue:   m.StockValue(),
		LeadTimeDays: m.LeadTimeDays,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
