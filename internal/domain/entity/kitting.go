package entity

import "github.com/shopspring/decimal"

// UnknownMaterialName nombre mostrado cuando la receta apunta a un material inexistente.
const UnknownMaterialName = "Unknown"

// KittingOption cuántos kits de Product se pueden armar con el stock actual. Derivado, nunca se persiste.
type KittingOption struct {
	Product    Product
	MaxKits    int64
	Components []KitComponent
}

// KitComponent desglose por línea de receta.
// Unconstrained indica RequiredPerUnit <= 0: la línea no limita la producción y Possible no aplica.
type KitComponent struct {
	MaterialID      string
	Name            string
	Resolved        bool
	RequiredPerUnit decimal.Decimal
	CurrentStock    decimal.Decimal
	Possible        int64
	Unconstrained   bool
}

// Bottleneck devuelve el componente que fija MaxKits (el primero con menor Possible).
func (o KittingOption) Bottleneck() (KitComponent, bool) {
	i := o.BottleneckIndex()
	if i < 0 {
		return KitComponent{}, false
	}
	return o.Components[i], true
}

// BottleneckIndex posición en Components del componente limitante; -1 si todas las líneas son sin requerimiento.
func (o KittingOption) BottleneckIndex() int {
	best := -1
	for i, c := range o.Components {
		if c.Unconstrained {
			continue
		}
		if best < 0 || c.Possible < o.Components[best].Possible {
			best = i
		}
	}
	return best
}
