package repository

import "github.com/suministra/suministra-api/internal/domain/entity"

// InventoryMovementRepository puerto de persistencia para el historial de movimientos.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
