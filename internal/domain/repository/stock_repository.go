package repository

import "github.com/suministra/suministra-api/internal/domain/entity"

// StockRepository puerto de persistencia para niveles de stock.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar ajustes
// concurrentes sobre el mismo producto; el motor de empaque en sí es puro y
// no coordina nada.
type StockRepository interface {
	Get(productID string) (*entity.Stock, error)
	GetForUpdate(productID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
}
