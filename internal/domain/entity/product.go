package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto/SKU del catálogo de suministros.
// Cost es promedio ponderado calculado al recibir órdenes de compra.
// FeetPerLayer y LayersPerPallet son las constantes de empaque que consume
// el motor de conversión (pies² por capa y capas por estiba).
type Product struct {
	ID              string
	SKU             string // código único
	Name            string
	Description     string
	ManufacturerID  string
	Price           decimal.Decimal // precio de venta por pie²
	Cost            decimal.Decimal // costo promedio ponderado (inicia en 0)
	TaxRate         decimal.Decimal // % de impuesto: 0, 5 o 19
	UnitMeasure     string          // SQFT, LNFT
	FeetPerLayer    float64
	LayersPerPallet float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
