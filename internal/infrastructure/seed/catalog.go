// Package seed carga un catálogo inicial (materiales, productos y recetas) desde JSON.
// Lo usan el arranque con APP_STORAGE=memory y cmd/seed para generar el script SQL equivalente.
package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/pkg/numparse"
	"github.com/shopspring/decimal"
)

// Catalog formato del archivo. Las cantidades aceptan número o texto con formato local.
type Catalog struct {
	Materials []MaterialSeed `json:"materials"`
	Products  []ProductSeed  `json:"products"`
	BOMs      []BOMSeed      `json:"boms"`
}

type MaterialSeed struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Group        string `json:"group"`
	Unit         string `json:"unit"`
	InitialStock any    `json:"initial_stock"`
	UnitCost     any    `json:"unit_cost"`
	MinStock     any    `json:"min_stock"`
}

type ProductSeed struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type BOMSeed struct {
	ID        string        `json:"id"`
	ProductID string        `json:"product_id"`
	Status    string        `json:"status"`
	Items     []BOMItemSeed `json:"items"`
}

type BOMItemSeed struct {
	MaterialID string `json:"material_id"`
	Quantity   any    `json:"quantity"`
}

// Data catálogo ya convertido a entidades.
type Data struct {
	Materials []*entity.Material
	Products  []*entity.Product
	BOMs      []*entity.BOMHeader
}

// Decode lee el JSON. UseNumber conserva los decimales sin pasar por float64.
func Decode(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decodificar catálogo: %w", err)
	}
	return &c, nil
}

// Build valida y convierte el catálogo. Los ids vacíos se generan; las recetas sin estado quedan activas.
func (c *Catalog) Build(now time.Time) (*Data, error) {
	out := &Data{}
	for i, ms := range c.Materials {
		if strings.TrimSpace(ms.Code) == "" || strings.TrimSpace(ms.Name) == "" {
			return nil, fmt.Errorf("material %d: code y name requeridos", i)
		}
		stock, err := number(ms.InitialStock, "initial_stock", ms.Code, inventory.QuantityScale)
		if err != nil {
			return nil, err
		}
		cost, err := number(ms.UnitCost, "unit_cost", ms.Code, inventory.CostScale)
		if err != nil {
			return nil, err
		}
		minStock, err := number(ms.MinStock, "min_stock", ms.Code, inventory.QuantityScale)
		if err != nil {
			return nil, err
		}
		category := entity.Category(ms.Category)
		if category == "" {
			category = entity.CategoryRawMaterial
		}
		unit := ms.Unit
		if unit == "" {
			unit = "und"
		}
		m := &entity.Material{
			ID:           idOrNew(ms.ID),
			Code:         ms.Code,
			Name:         ms.Name,
			Category:     category,
			Group:        ms.Group,
			Unit:         unit,
			CurrentStock: stock,
			InitialStock: stock,
			UnitCost:     cost,
			MinStock:     minStock,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		m.Group = m.GroupOrDefault()
		out.Materials = append(out.Materials, m)
	}
	for _, ps := range c.Products {
		out.Products = append(out.Products, &entity.Product{ID: idOrNew(ps.ID), Code: ps.Code, Name: ps.Name})
	}
	for _, bs := range c.BOMs {
		status := bs.Status
		if status == "" {
			status = entity.BOMStatusActive
		}
		h := &entity.BOMHeader{ID: idOrNew(bs.ID), ProductID: bs.ProductID, Status: status}
		for _, it := range bs.Items {
			qty, err := number(it.Quantity, "quantity", bs.ProductID+"/"+it.MaterialID, inventory.CostScale)
			if err != nil {
				return nil, err
			}
			h.Items = append(h.Items, entity.BOMItem{MaterialID: it.MaterialID, Quantity: qty})
		}
		out.BOMs = append(out.BOMs, h)
	}
	return out, nil
}

// number parsea v y exige que quepa en scale decimales (la escala de su columna).
func number(v any, field, ref string, scale int32) (decimal.Decimal, error) {
	d, err := numparse.Parse(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s (%s): %w", field, ref, err)
	}
	if !inventory.FitsScale(d, scale) {
		return decimal.Zero, fmt.Errorf("%s (%s): admite hasta %d decimales", field, ref, scale)
	}
	return d, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
