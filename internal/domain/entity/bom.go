package entity

import "github.com/shopspring/decimal"

// BOMStatusActive estado de la receta vigente.
const BOMStatusActive = "active"

// Product producto terminado. Code enlaza con el Material que recibe el kit armado.
type Product struct {
	ID   string
	Code string
	Name string
}

// BOMHeader receta de un producto (un solo nivel, sin sustitutos).
type BOMHeader struct {
	ID        string
	ProductID string
	Status    string
	Items     []BOMItem
}

// IsActive true si la receta está vigente.
func (h *BOMHeader) IsActive() bool {
	return h.Status == BOMStatusActive
}

// BOMItem cantidad de un material consumida por unidad del producto.
type BOMItem struct {
	MaterialID string
	Quantity   decimal.Decimal
}
