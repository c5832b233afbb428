package dto

import "github.com/shopspring/decimal"

// KitComponentDTO desglose de una línea de receta. Possible es null cuando la línea no limita.
type KitComponentDTO struct {
	MaterialID      string          `json:"material_id"`
	Name            string          `json:"name"`
	RequiredPerUnit decimal.Decimal `json:"required_per_unit"`
	CurrentStock    decimal.Decimal `json:"current_stock"`
	Possible        *int64          `json:"possible"`
	Bottleneck      bool            `json:"bottleneck"`
}

// KittingOptionDTO cuántos kits se pueden armar de un producto.
type KittingOptionDTO struct {
	ProductID   string            `json:"product_id"`
	ProductCode string            `json:"product_code"`
	ProductName string            `json:"product_name"`
	MaxKits     int64             `json:"max_kits"`
	Components  []KitComponentDTO `json:"components"`
}

// ExecuteKitRequest body para POST /api/kitting/execute.
type ExecuteKitRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// KitStepDTO resultado de un consumo de componente.
type KitStepDTO struct {
	MaterialID    string          `json:"material_id"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Skipped       bool            `json:"skipped,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// KitExecutionResponse resultado agregado del armado.
type KitExecutionResponse struct {
	ProductID            string       `json:"product_id"`
	Quantity             int64        `json:"quantity"`
	Outcome              string       `json:"outcome"`
	Status               string       `json:"status"` // success | warning | failure
	Components           []KitStepDTO `json:"components"`
	ReceiptTransactionID string       `json:"receipt_transaction_id,omitempty"`
	Warning              string       `json:"warning,omitempty"`
}
