package inventory

import (
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// KitOutcome resultado de armar kits. Los consumos nunca se revierten.
type KitOutcome string

const (
	// KitConsumedAndReceived todos los componentes consumidos y el producto terminado ingresado.
	KitConsumedAndReceived KitOutcome = "consumed_and_received"
	// KitConsumedNoReceipt componentes consumidos; no existe material con el código del producto.
	KitConsumedNoReceipt KitOutcome = "consumed_no_receipt"
	// KitConsumed componentes consumidos; la entrada del producto terminado falló al guardarse.
	KitConsumed KitOutcome = "consumed"
	// KitPartiallyConsumed al menos un consumo falló; no se intenta la entrada.
	KitPartiallyConsumed KitOutcome = "partially_consumed"
	// KitNothingConsumed ninguna salida se confirmó (receta sin consumo o sin materiales); no se intenta la entrada.
	KitNothingConsumed KitOutcome = "nothing_consumed"
)

// Status resume el resultado para el llamador: success, warning o failure.
func (o KitOutcome) Status() string {
	switch o {
	case KitConsumedAndReceived:
		return "success"
	case KitConsumedNoReceipt, KitConsumed:
		return "warning"
	default:
		return "failure"
	}
}

// ComponentStep consumo de un componente.
type ComponentStep struct {
	MaterialID  string
	Name        string
	Quantity    decimal.Decimal
	Transaction *entity.Transaction
	Skipped     bool // sin salida: material no resuelto (Err = ErrNotFound) o consumo cero
	Err         error
}

// KitExecutionResult detalle por paso del armado.
type KitExecutionResult struct {
	ProductID  string
	Quantity   int64
	Outcome    KitOutcome
	Components []ComponentStep
	Receipt    *entity.Transaction
	ReceiptErr error
}

// FailedComponents pasos de consumo que no se confirmaron.
func (r *KitExecutionResult) FailedComponents() []ComponentStep {
	var failed []ComponentStep
	for _, s := range r.Components {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}
