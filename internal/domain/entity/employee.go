package entity

import "time"

// Roles de empleado para el RBAC de rutas.
const (
	RoleAdmin  = "admin"
	RoleVentas = "ventas"
	RoleBodega = "bodega"
)

// Employee empleado del negocio con acceso a la aplicación.
type Employee struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | ventas | bodega
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
