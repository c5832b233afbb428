package inventory

import (
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ComputeKittingOptions calcula, por producto con receta, el máximo de kits armables y el
// desglose por componente. Función pura: se recalcula en cada consulta, sin caché.
//
//   - Producto sin receta o con receta vacía: se excluye del resultado.
//   - Material no encontrado: stock 0 y nombre "Unknown".
//   - Línea con cantidad <= 0: no limita (Unconstrained).
//   - Si ninguna línea limita, MaxKits es 0.
func ComputeKittingOptions(
	products []*entity.Product,
	materials []*entity.Material,
	boms []*entity.BOMHeader,
) []entity.KittingOption {
	materialByID := make(map[string]*entity.Material, len(materials))
	for _, m := range materials {
		materialByID[m.ID] = m
	}
	// Primera receta por producto
	bomByProduct := make(map[string]*entity.BOMHeader, len(boms))
	for _, b := range boms {
		if _, seen := bomByProduct[b.ProductID]; !seen {
			bomByProduct[b.ProductID] = b
		}
	}

	options := make([]entity.KittingOption, 0, len(products))
	for _, p := range products {
		bom, ok := bomByProduct[p.ID]
		if !ok || len(bom.Items) == 0 {
			continue
		}
		options = append(options, kittingOption(*p, bom.Items, materialByID))
	}
	return options
}

func kittingOption(p entity.Product, items []entity.BOMItem, materials map[string]*entity.Material) entity.KittingOption {
	opt := entity.KittingOption{Product: p, Components: make([]entity.KitComponent, 0, len(items))}

	constrained := false
	for _, item := range items {
		c := entity.KitComponent{
			MaterialID:      item.MaterialID,
			Name:            entity.UnknownMaterialName,
			RequiredPerUnit: item.Quantity,
			CurrentStock:    decimal.Zero,
		}
		if m, ok := materials[item.MaterialID]; ok {
			c.Name = m.Name
			c.CurrentStock = m.CurrentStock
			c.Resolved = true
		}

		if !item.Quantity.IsPositive() {
			c.Unconstrained = true
		} else {
			c.Possible = possibleKits(c.CurrentStock, item.Quantity)
			if !constrained || c.Possible < opt.MaxKits {
				opt.MaxKits = c.Possible
			}
			constrained = true
		}
		opt.Components = append(opt.Components, c)
	}
	if !constrained {
		opt.MaxKits = 0
	}
	return opt
}

// possibleKits floor(stock / requerido), nunca negativo.
func possibleKits(stock, required decimal.Decimal) int64 {
	if !stock.IsPositive() {
		return 0
	}
	return stock.Div(required).Floor().IntPart()
}
