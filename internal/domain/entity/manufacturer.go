package entity

import "time"

// Manufacturer fabricante/proveedor al que se le emiten órdenes de compra.
type Manufacturer struct {
	ID        string
	Name      string
	TaxID     string // NIT del fabricante
	Email     string
	Phone     string
	Address   string
	City      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
