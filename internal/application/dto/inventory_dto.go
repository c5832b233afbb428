package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordTransactionRequest body para POST /api/inventory/transactions.
// Quantity, PurchaseTotal y UnitCost aceptan número o texto con formato local.
// Si solo llega UnitCost en una entrada, el valor de compra es UnitCost × Quantity.
type RecordTransactionRequest struct {
	MaterialID    string `json:"material_id"`
	Type          string `json:"type"`
	Quantity      any    `json:"quantity"`
	Notes         string `json:"notes"`
	PurchaseTotal any    `json:"purchase_total,omitempty"`
	UnitCost      any    `json:"unit_cost,omitempty"`
}

// ListTransactionsRequest filtros del kardex (query string).
type ListTransactionsRequest struct {
	MaterialID string `query:"material_id"`
	PageRequest
}

// TransactionResponse fila del kardex.
type TransactionResponse struct {
	ID             string          `json:"id"`
	MaterialID     string          `json:"material_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Notes          string          `json:"notes"`
	Actor          string          `json:"actor"`
	PreviousStock  decimal.Decimal `json:"previous_stock"`
	ResultingStock decimal.Decimal `json:"resulting_stock"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TransactionListResponse página del kardex.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ReconcileResponse comparación entre el stock guardado y el reconstruido desde el kardex.
type ReconcileResponse struct {
	MaterialID    string          `json:"material_id"`
	OpeningStock  decimal.Decimal `json:"opening_stock"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	ReplayedStock decimal.Decimal `json:"replayed_stock"`
	Drift         decimal.Decimal `json:"drift"`
	Consistent    bool            `json:"consistent"`
	Transactions  int             `json:"transactions"`
}
