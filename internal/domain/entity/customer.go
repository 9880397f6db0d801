package entity

import "time"

// Customer cliente del negocio (órdenes de venta / tienda).
type Customer struct {
	ID        string
	Name      string
	Document  string // NIT o cédula
	Email     string
	Phone     string
	Address   string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
