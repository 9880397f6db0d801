package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjustments.
// Mode decide qué campos del delta se usan: "quantity" usa Quantity;
// "packed" usa Pallets y Layers. Nunca ambos en un mismo ajuste.
type AdjustStockRequest struct {
	ProductID string  `json:"product_id"`
	Mode      string  `json:"mode"` // packed | quantity
	Quantity  float64 `json:"quantity,omitempty"`
	Pallets   int64   `json:"pallets,omitempty"`
	Layers    float64 `json:"layers,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// StockResponse nivel de stock resultante en ambas representaciones.
type StockResponse struct {
	ProductID string    `json:"product_id"`
	Quantity  float64   `json:"quantity"`
	Pallets   int64     `json:"pallets"`
	Layers    float64   `json:"layers"`
	Backorder bool      `json:"backorder"` // quantity < 0
	UpdatedAt time.Time `json:"updated_at"`
}

// MovementResponse un movimiento del historial de inventario.
type MovementResponse struct {
	ID           string          `json:"id"`
	ReferenceID  string          `json:"reference_id,omitempty"`
	ProductID    string          `json:"product_id"`
	Type         string          `json:"type"`
	Mode         string          `json:"mode"`
	Quantity     float64         `json:"quantity"`
	DeltaPallets int64           `json:"delta_pallets"`
	DeltaLayers  float64         `json:"delta_layers"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Date         time.Time       `json:"date"`
	CreatedBy    string          `json:"created_by"`
}
