package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + ValorCompra) / (StockActual + CantEntrada)
// El resultado se redondea a CostScale. ok es false cuando el stock resultante no es positivo: en ese caso el costo no se toca.
func WeightedAverageCost(stockActual, costoActual, cantEntrada, valorCompra decimal.Decimal) (decimal.Decimal, bool) {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoActual, false
	}
	num := stockActual.Mul(costoActual).Add(valorCompra)
	if num.IsNegative() {
		return costoActual, false
	}
	return num.Div(sum).Round(CostScale), true
}
