package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// TransactionRepository puerto del kardex: solo inserción y lectura.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	// List ordena del más reciente al más antiguo (created_at DESC, sequence DESC).
	List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error)
	CountByMaterial(ctx context.Context, materialID string) (int, error)
}
