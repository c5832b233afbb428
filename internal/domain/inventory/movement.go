package inventory

import (
	"fmt"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Movement variante cerrada de movimiento: In, Out o Adjust.
type Movement interface {
	Type() entity.TransactionType
	// Quantity lo que se guarda en la fila del kardex (delta para IN/OUT, objetivo para ADJ).
	Quantity() decimal.Decimal
	isMovement()
}

// In entrada. PurchaseTotal (valor total de la compra) es opcional; solo con él se recalcula el costo.
type In struct {
	Qty           decimal.Decimal
	PurchaseTotal *decimal.Decimal
}

// Out salida; nunca deja el stock negativo.
type Out struct {
	Qty decimal.Decimal
}

// Adjust fija el stock absoluto (conteo físico). Target puede ser 0.
type Adjust struct {
	Target decimal.Decimal
}

func (In) Type() entity.TransactionType     { return entity.TransactionIN }
func (Out) Type() entity.TransactionType    { return entity.TransactionOUT }
func (Adjust) Type() entity.TransactionType { return entity.TransactionADJ }

func (m In) Quantity() decimal.Decimal     { return m.Qty }
func (m Out) Quantity() decimal.Decimal    { return m.Qty }
func (m Adjust) Quantity() decimal.Decimal { return m.Target }

func (In) isMovement()     {}
func (Out) isMovement()    {}
func (Adjust) isMovement() {}

// NewMovement valida la cantidad según el tipo y construye la variante.
func NewMovement(t entity.TransactionType, qty decimal.Decimal, purchaseTotal *decimal.Decimal) (Movement, error) {
	if purchaseTotal != nil && t != entity.TransactionIN {
		return nil, fmt.Errorf("%w: valor de compra solo aplica a entradas", domain.ErrInvalidInput)
	}
	if !FitsScale(qty, QuantityScale) {
		return nil, fmt.Errorf("%w: la cantidad admite hasta %d decimales", domain.ErrInvalidQuantity, QuantityScale)
	}
	switch t {
	case entity.TransactionIN:
		if !qty.IsPositive() {
			return nil, fmt.Errorf("%w: la entrada debe ser mayor que cero", domain.ErrInvalidQuantity)
		}
		if purchaseTotal != nil && purchaseTotal.IsNegative() {
			return nil, fmt.Errorf("%w: valor de compra negativo", domain.ErrInvalidQuantity)
		}
		return In{Qty: qty, PurchaseTotal: purchaseTotal}, nil
	case entity.TransactionOUT:
		if !qty.IsPositive() {
			return nil, fmt.Errorf("%w: la salida debe ser mayor que cero", domain.ErrInvalidQuantity)
		}
		return Out{Qty: qty}, nil
	case entity.TransactionADJ:
		if qty.IsNegative() {
			return nil, fmt.Errorf("%w: el ajuste no admite stock negativo", domain.ErrInvalidQuantity)
		}
		return Adjust{Target: qty}, nil
	}
	return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, t)
}

// StockState stock y costo de un material en un instante.
type StockState struct {
	Stock    decimal.Decimal
	UnitCost decimal.Decimal
}

// Effect resultado de aplicar un movimiento.
type Effect struct {
	Before      StockState
	After       StockState
	CostChanged bool
}

// Apply calcula el nuevo estado sin efectos secundarios. Es el único punto que decide
// cómo cada tipo de movimiento cambia stock y costo.
func Apply(m Movement, s StockState) (Effect, error) {
	eff := Effect{Before: s, After: s}
	switch mv := m.(type) {
	case In:
		eff.After.Stock = s.Stock.Add(mv.Qty)
		if mv.PurchaseTotal != nil {
			if cost, ok := WeightedAverageCost(s.Stock, s.UnitCost, mv.Qty, *mv.PurchaseTotal); ok {
				eff.After.UnitCost = cost
				eff.CostChanged = true
			}
		}
	case Out:
		next := s.Stock.Sub(mv.Qty)
		if next.IsNegative() {
			return Effect{}, fmt.Errorf("%w: disponible %s, solicitado %s",
				domain.ErrInsufficientStock, s.Stock.String(), mv.Qty.String())
		}
		eff.After.Stock = next
	case Adjust:
		eff.After.Stock = mv.Target
	default:
		return Effect{}, fmt.Errorf("%w: movimiento %T", domain.ErrInvalidInput, m)
	}
	return eff, nil
}

// SignedDelta variación de stock que produjo una fila del kardex dado el stock previo.
func SignedDelta(t entity.TransactionType, qty, before decimal.Decimal) decimal.Decimal {
	switch t {
	case entity.TransactionIN:
		return qty
	case entity.TransactionOUT:
		return qty.Neg()
	case entity.TransactionADJ:
		return qty.Sub(before)
	}
	return decimal.Zero
}
