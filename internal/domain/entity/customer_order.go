package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de cliente (tienda).
const (
	CustomerOrderPlaced    = "PLACED"
	CustomerOrderBackorder = "BACKORDER" // alguna línea dejó stock negativo
	CustomerOrderCanceled  = "CANCELED"
)

// CustomerOrder orden de venta de la tienda. Al crearla se descuentan las
// cantidades del inventario (modo quantity); el stock puede quedar negativo.
type CustomerOrder struct {
	ID         string
	Number     string // consecutivo legible: OV-000123
	CustomerID string
	Status     string
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	Notes      string
	CreatedBy  string // employee ID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CustomerOrderItem renglón de una orden de cliente: cantidad en pies² y
// precio unitario congelado al momento de la venta.
type CustomerOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  float64         // pies²
	UnitPrice decimal.Decimal // precio por pie²
	TaxRate   decimal.Decimal
	LineTotal decimal.Decimal
}
