package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest alta de material. Los campos numéricos aceptan número o texto con formato
// local ("1.234,56"); se normalizan con numparse. InitialStock/UnitCost son la apertura implícita.
type CreateMaterialRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Group        string `json:"group"`
	Unit         string `json:"unit"`
	InitialStock any    `json:"initial_stock"`
	UnitCost     any    `json:"unit_cost"`
	MinStock     any    `json:"min_stock"`
	Allocated    any    `json:"allocated"`
	LeadTimeDays int    `json:"lead_time_days"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Group        string          `json:"group"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	Allocated    decimal.Decimal `json:"allocated"`
	Available    decimal.Decimal `json:"available"`
	MinStock     decimal.Decimal `json:"min_stock"`
	BelowMinimum bool            `json:"below_minimum"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	StockValue   decimal.Decimal `json:"stock_value"`
	LeadTimeDays int             `json:"lead_time_days"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// GroupSummaryDTO métricas por familia de materiales.
type GroupSummaryDTO struct {
	Group        string          `json:"group"`
	Materials    int             `json:"materials"`
	BelowMinimum int             `json:"below_minimum"`
	StockValue   decimal.Decimal `json:"stock_value"`
}

// StockSummaryResponse proyección sin estado sobre el catálogo completo.
type StockSummaryResponse struct {
	Materials    int               `json:"materials"`
	BelowMinimum int               `json:"below_minimum"`
	StockValue   decimal.Decimal   `json:"stock_value"`
	Groups       []GroupSummaryDTO `json:"groups"`
}
