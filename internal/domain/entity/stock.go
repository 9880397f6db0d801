package entity

import "time"

// Stock nivel de inventario actual de un producto, en ambas representaciones.
// Quantity es la cantidad continua (pies²); Pallets/Layers la forma empacada.
// Puede ser negativo (backorder); la convención de signo la mantiene el motor
// de empaque. Los campos empacados son la fuente de verdad si divergen.
type Stock struct {
	ProductID string
	Quantity  float64
	Pallets   int64
	Layers    float64
	UpdatedAt time.Time
}
