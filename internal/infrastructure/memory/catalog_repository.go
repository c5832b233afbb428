package memory

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ProductRepository productos en memoria.
type ProductRepository struct {
	s *Store
}

// NewProductRepository crea el repositorio.
func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{s: s}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// List en orden de alta.
func (r *ProductRepository) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// BOMRepository recetas en memoria.
type BOMRepository struct {
	s *Store
}

// NewBOMRepository crea el repositorio.
func NewBOMRepository(s *Store) *BOMRepository {
	return &BOMRepository{s: s}
}

var _ repository.BOMRepository = (*BOMRepository)(nil)

// ListActive recetas con estado active, en orden de alta.
func (r *BOMRepository) ListActive(_ context.Context) ([]*entity.BOMHeader, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.BOMHeader, 0, len(r.s.boms))
	for _, b := range r.s.boms {
		if b.IsActive() {
			out = append(out, cloneBOM(b))
		}
	}
	return out, nil
}
