package inventory

import "github.com/shopspring/decimal"

// Escalas del kardex; coinciden con las columnas NUMERIC(18,4) de cantidades y NUMERIC(18,6)
// de costos y cantidades de receta.
const (
	QuantityScale int32 = 4
	CostScale     int32 = 6
)

// FitsScale indica si d se guarda sin redondeo con scale decimales.
func FitsScale(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Round(scale))
}
