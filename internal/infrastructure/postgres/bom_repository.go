package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo recetas sobre PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// ListActive recetas vigentes con sus líneas en una sola consulta (LEFT JOIN: una receta sin
// líneas se devuelve con Items vacío).
func (r *BOMRepo) ListActive(ctx context.Context) ([]*entity.BOMHeader, error) {
	query := `
		SELECT h.id, h.product_id, h.status, i.material_id, i.quantity
		FROM bom_headers h
		LEFT JOIN bom_items i ON i.bom_id = h.id
		WHERE h.status = $1
		ORDER BY h.created_at, h.id, i.position`
	rows, err := r.q.Query(ctx, query, entity.BOMStatusActive)
	if err != nil {
		return nil, fmt.Errorf("list boms: %w", err)
	}
	defer rows.Close()

	var list []*entity.BOMHeader
	var current *entity.BOMHeader
	for rows.Next() {
		var id, productID, status string
		var materialID *string
		var qty decimal.NullDecimal
		if err := rows.Scan(&id, &productID, &status, &materialID, &qty); err != nil {
			return nil, fmt.Errorf("scan bom: %w", err)
		}
		if current == nil || current.ID != id {
			current = &entity.BOMHeader{ID: id, ProductID: productID, Status: status}
			list = append(list, current)
		}
		if materialID != nil {
			current.Items = append(current.Items, entity.BOMItem{MaterialID: *materialID, Quantity: qty.Decimal})
		}
	}
	return list, rows.Err()
}
