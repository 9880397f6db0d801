package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseOrderPending  = "PENDING"
	PurchaseOrderReceived = "RECEIVED"
	PurchaseOrderCanceled = "CANCELED"
)

// PurchaseOrder orden de compra a un fabricante. La recepción aplica los
// deltas empacados de sus renglones al inventario en una sola transacción.
type PurchaseOrder struct {
	ID             string
	Number         string // consecutivo legible: OC-000123
	ManufacturerID string
	Status         string
	Total          decimal.Decimal
	Notes          string
	CreatedBy      string // employee ID
	CreatedAt      time.Time
	ReceivedAt     *time.Time
	UpdatedAt      time.Time
}

// PurchaseOrderItem renglón de una orden de compra: cantidad pedida en
// estibas + capas y costo unitario por pie².
type PurchaseOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Pallets   int64
	Layers    float64
	UnitCost  decimal.Decimal // costo por pie²
}
