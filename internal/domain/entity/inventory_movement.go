package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // recepción de orden de compra
	MovementTypeOUT        = "OUT"        // salida por orden de cliente
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual (conteo físico, merma)
)

// InventoryMovement registro de auditoría de cada cambio de stock.
// Quantity es el delta firmado en la unidad continua; DeltaPallets/DeltaLayers
// el delta empacado cuando el ajuste vino en esa representación.
type InventoryMovement struct {
	ID           string
	ReferenceID  string // ID de la orden de compra/venta que originó el movimiento
	ProductID    string
	Type         string
	Mode         string // packed | quantity
	Quantity     float64
	DeltaPallets int64
	DeltaLayers  float64
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal
	Date         time.Time
	CreatedAt    time.Time
	CreatedBy    string // employee ID
}
