package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tipo de movimiento del kardex.
type TransactionType string

const (
	TransactionIN  TransactionType = "IN"  // entrada, Quantity es delta positivo
	TransactionOUT TransactionType = "OUT" // salida, Quantity es delta positivo
	TransactionADJ TransactionType = "ADJ" // ajuste, Quantity es el stock absoluto resultante
)

// IsValid indica si es uno de los tres tipos soportados.
func (t TransactionType) IsValid() bool {
	return t == TransactionIN || t == TransactionOUT || t == TransactionADJ
}

// Transaction fila inmutable del kardex. Nunca se edita ni se borra: las correcciones son
// nuevos movimientos.
type Transaction struct {
	ID             string
	Sequence       int64 // desempate de orden dentro del mismo instante
	MaterialID     string
	Type           TransactionType
	Quantity       decimal.Decimal
	Notes          string
	Actor          string
	PreviousStock  decimal.Decimal
	ResultingStock decimal.Decimal
	CreatedAt      time.Time
}

// TransactionFilter filtro de listado; MaterialID vacío lista todo el kardex.
type TransactionFilter struct {
	MaterialID string
	Limit      int
	Offset     int
}
