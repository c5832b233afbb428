package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ProductRepository productos terminados (solo lectura para el motor).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
}

// BOMRepository recetas vigentes con sus líneas.
type BOMRepository interface {
	ListActive(ctx context.Context) ([]*entity.BOMHeader, error)
}
