package memory

import (
	"context"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// MaterialRepository implementación en memoria de repository.MaterialRepository.
type MaterialRepository struct {
	s *Store
}

// NewMaterialRepository crea el repositorio.
func NewMaterialRepository(s *Store) *MaterialRepository {
	return &MaterialRepository{s: s}
}

var _ repository.MaterialRepository = (*MaterialRepository)(nil)

// Create inserta un material; ErrDuplicate si el id o el código ya existen.
func (r *MaterialRepository) Create(_ context.Context, m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[m.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.s.materials {
		if existing.Code == m.Code {
			return domain.ErrDuplicate
		}
	}
	cp := *m
	r.s.materials[m.ID] = &cp
	return nil
}

// GetByID devuelve una copia del material o (nil, nil).
func (r *MaterialRepository) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

// GetByCode busca por código exacto.
func (r *MaterialRepository) GetByCode(_ context.Context, code string) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.materials {
		if m.Code == code {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate fuera de TxRunner no bloquea; equivale a GetByID.
func (r *MaterialRepository) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.GetByID(ctx, id)
}

// UpdateStockAndCost escribe stock y costo directamente.
func (r *MaterialRepository) UpdateStockAndCost(_ context.Context, id string, stock, unitCost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	m.UnitCost = unitCost
	m.UpdatedAt = time.Now()
	return nil
}

// List ordenado por código.
func (r *MaterialRepository) List(_ context.Context) ([]*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedMaterialsLocked(), nil
}

// Delete elimina si no hay movimientos ni recetas que lo referencien.
func (r *MaterialRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[id]; !ok {
		return domain.ErrNotFound
	}
	if r.s.referencedLocked(id) {
		return domain.ErrConflict
	}
	delete(r.s.materials, id)
	return nil
}
