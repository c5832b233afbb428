package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category clasificación del material. Además de las conocidas se aceptan categorías propias del cliente.
type Category string

const (
	CategoryRawMaterial Category = "raw_material"
	CategoryPackaging   Category = "packaging"
	CategoryReturn      Category = "return"
	CategoryEnergy      Category = "energy"
	CategoryLabor       Category = "labor"
	CategoryOverhead    Category = "overhead"
)

// DefaultGroup familia asignada cuando el material no trae grupo.
const DefaultGroup = "Diversos"

// IsKnown indica si es una de las categorías predefinidas.
func (c Category) IsKnown() bool {
	switch c {
	case CategoryRawMaterial, CategoryPackaging, CategoryReturn, CategoryEnergy, CategoryLabor, CategoryOverhead:
		return true
	}
	return false
}

// IsValid cualquier categoría conocida o un texto propio no vacío.
func (c Category) IsValid() bool {
	return c.IsKnown() || strings.TrimSpace(string(c)) != ""
}

// Material insumo, empaque, mano de obra o gasto con stock y costo promedio ponderado.
// CurrentStock y UnitCost solo cambian a través del kardex (Transaction).
type Material struct {
	ID           string
	Code         string // código único
	Name         string
	Category     Category
	Group        string
	Unit         string
	CurrentStock decimal.Decimal
	Allocated    decimal.Decimal // reservado, solo informativo
	MinStock     decimal.Decimal
	UnitCost     decimal.Decimal // costo promedio ponderado
	InitialStock decimal.Decimal // stock de apertura (no genera fila en el kardex)
	LeadTimeDays int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GroupOrDefault devuelve el grupo o "Diversos".
func (m *Material) GroupOrDefault() string {
	if strings.TrimSpace(m.Group) == "" {
		return DefaultGroup
	}
	return m.Group
}

// Available stock no reservado.
func (m *Material) Available() decimal.Decimal {
	return m.CurrentStock.Sub(m.Allocated)
}

// BelowMinimum true si el stock actual está por debajo del mínimo configurado.
func (m *Material) BelowMinimum() bool {
	return m.MinStock.IsPositive() && m.CurrentStock.LessThan(m.MinStock)
}

// StockValue valorización del stock al costo promedio.
func (m *Material) StockValue() decimal.Decimal {
	return m.CurrentStock.Mul(m.UnitCost)
}
