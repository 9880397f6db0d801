package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL.
// Un producto sin fila en stock se trata como stock cero; la fila se crea
// con el primer Upsert.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de persistencia para stock.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el nivel de stock de un producto sin bloquear la fila.
func (r *StockRepo) Get(productID string) (*entity.Stock, error) {
	return r.get(productID, false)
}

// GetForUpdate obtiene el nivel de stock bloqueando la fila (SELECT FOR UPDATE)
// para serializar ajustes concurrentes sobre el mismo producto. Debe llamarse
// dentro de una transacción.
func (r *StockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	return r.get(productID, true)
}

func (r *StockRepo) get(productID string, forUpdate bool) (*entity.Stock, error) {
	query := `SELECT product_id, quantity, pallets, layers, updated_at FROM stock WHERE product_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID).Scan(
		&s.ProductID, &s.Quantity, &s.Pallets, &s.Layers, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Sin fila: stock cero
			return &entity.Stock{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el nivel de stock de un producto.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, quantity, pallets, layers, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = $2, pallets = $3, layers = $4, updated_at = $5`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.Quantity, stock.Pallets, stock.Layers, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
