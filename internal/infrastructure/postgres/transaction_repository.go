package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo kardex sobre PostgreSQL. Solo INSERT y SELECT: las filas son inmutables.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta la fila; sequence lo asigna la BD (BIGSERIAL) y se devuelve en tx.Sequence.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO inventory_transactions (id, material_id, type, quantity, notes, actor, previous_stock, resulting_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING sequence`
	err := r.q.QueryRow(ctx, query,
		tx.ID, tx.MaterialID, string(tx.Type), tx.Quantity, tx.Notes, tx.Actor,
		tx.PreviousStock, tx.ResultingStock, tx.CreatedAt,
	).Scan(&tx.Sequence)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// List del más reciente al más antiguo. Limit <= 0 devuelve todo.
func (r *TransactionRepo) List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error) {
	query := `
		SELECT id, sequence, material_id, type, quantity, notes, actor, previous_stock, resulting_stock, created_at
		FROM inventory_transactions WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.MaterialID != "" {
		query += fmt.Sprintf(" AND material_id = $%d", pos)
		args = append(args, filter.MaterialID)
		pos++
	}
	query += " ORDER BY created_at DESC, sequence DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, filter.Limit)
		pos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", pos)
		args = append(args, filter.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		var txType string
		if err := rows.Scan(
			&t.ID, &t.Sequence, &t.MaterialID, &txType, &t.Quantity, &t.Notes, &t.Actor,
			&t.PreviousStock, &t.ResultingStock, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = entity.TransactionType(txType)
		list = append(list, &t)
	}
	return list, rows.Err()
}

// CountByMaterial cantidad de movimientos del material.
func (r *TransactionRepo) CountByMaterial(ctx context.Context, materialID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_transactions WHERE material_id = $1`, materialID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
