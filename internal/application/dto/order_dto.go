package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Órdenes de compra ─────────────────────────────────────────────────────────

// PurchaseOrderItemRequest renglón de una orden de compra: cantidad pedida
// en estibas + capas y costo unitario por pie².
type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Pallets   int64           `json:"pallets"`
	Layers    float64         `json:"layers"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	ManufacturerID string                     `json:"manufacturer_id"`
	Notes          string                     `json:"notes,omitempty"`
	Items          []PurchaseOrderItemRequest `json:"items"`
}

// PurchaseOrderItemResponse renglón de una orden de compra en la API.
type PurchaseOrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Pallets   int64           `json:"pallets"`
	Layers    float64         `json:"layers"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse orden de compra con sus renglones.
type PurchaseOrderResponse struct {
	ID             string                      `json:"id"`
	Number         string                      `json:"number"`
	ManufacturerID string                      `json:"manufacturer_id"`
	Status         string                      `json:"status"`
	Total          decimal.Decimal             `json:"total"`
	Notes          string                      `json:"notes,omitempty"`
	Items          []PurchaseOrderItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	ReceivedAt     *time.Time                  `json:"received_at,omitempty"`
}

// ── Órdenes de cliente ────────────────────────────────────────────────────────

// CustomerOrderItemRequest renglón de una orden de cliente: cantidad en pies².
type CustomerOrderItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// CreateCustomerOrderRequest body para POST /api/customer-orders.
type CreateCustomerOrderRequest struct {
	CustomerID string                     `json:"customer_id"`
	Notes      string                     `json:"notes,omitempty"`
	Items      []CustomerOrderItemRequest `json:"items"`
}

// CustomerOrderItemResponse renglón de una orden de cliente en la API.
type CustomerOrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  float64         `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CustomerOrderResponse orden de cliente con totales y renglones.
type CustomerOrderResponse struct {
	ID         string                      `json:"id"`
	Number     string                      `json:"number"`
	CustomerID string                      `json:"customer_id"`
	Status     string                      `json:"status"`
	Subtotal   decimal.Decimal             `json:"subtotal"`
	Tax        decimal.Decimal             `json:"tax"`
	Total      decimal.Decimal             `json:"total"`
	Notes      string                      `json:"notes,omitempty"`
	Items      []CustomerOrderItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
}
