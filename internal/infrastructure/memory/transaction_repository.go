package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// TransactionRepository kardex en memoria (solo inserción y lectura).
type TransactionRepository struct {
	s *Store
}

// NewTransactionRepository crea el repositorio.
func NewTransactionRepository(s *Store) *TransactionRepository {
	return &TransactionRepository{s: s}
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)

// Create inserta la fila asignando Sequence.
func (r *TransactionRepository) Create(_ context.Context, tx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertLocked(tx)
}

// List del más reciente al más antiguo. Limit <= 0 devuelve todo.
func (r *TransactionRepository) List(_ context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	r.s.mu.RLock()
	out := make([]*entity.Transaction, 0, len(r.s.txs))
	for _, tx := range r.s.txs {
		if filter.MaterialID != "" && tx.MaterialID != filter.MaterialID {
			continue
		}
		cp := *tx
		out = append(out, &cp)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Sequence > out[j].Sequence
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*entity.Transaction{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// CountByMaterial cantidad de movimientos del material.
func (r *TransactionRepository) CountByMaterial(_ context.Context, materialID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, tx := range r.s.txs {
		if tx.MaterialID == materialID {
			n++
		}
	}
	return n, nil
}
