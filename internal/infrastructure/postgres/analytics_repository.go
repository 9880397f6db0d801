package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/suministra/suministra-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas para el dashboard. Solo lecturas; las
// consultas trabajan sobre stock, products, customer_orders y movimientos.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de consultas analíticas.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// StockValuation valor de inventario por producto: cantidad por costo promedio.
// Solo productos con fila de stock; el backorder entra con valor negativo.
func (r *AnalyticsRepo) StockValuation(ctx context.Context) ([]repository.StockValuationRow, error) {
	query := `
		SELECT p.id, p.sku, p.name, s.quantity, s.pallets, s.layers, p.cost,
		       (s.quantity::numeric * p.cost) AS value
		FROM stock s
		JOIN products p ON p.id = s.product_id
		ORDER BY value DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock valuation: %w", err)
	}
	defer rows.Close()

	var out []repository.StockValuationRow
	for rows.Next() {
		var row repository.StockValuationRow
		if err := rows.Scan(
			&row.ProductID, &row.SKU, &row.Name, &row.Quantity, &row.Pallets, &row.Layers,
			&row.UnitCost, &row.Value,
		); err != nil {
			return nil, fmt.Errorf("scan valuation: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LowStock productos con cantidad menor o igual al umbral. Con umbral 0 solo
// sale el backorder (cantidad negativa).
func (r *AnalyticsRepo) LowStock(ctx context.Context, threshold float64) ([]repository.LowStockRow, error) {
	query := `
		SELECT p.id, p.sku, p.name, s.quantity, s.pallets, s.layers, (s.quantity < 0) AS backorder
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.quantity <= $1
		ORDER BY s.quantity ASC`
	rows, err := r.q.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()

	var out []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(
			&row.ProductID, &row.SKU, &row.Name, &row.Quantity, &row.Pallets, &row.Layers, &row.Backorder,
		); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SalesSummary ventas por producto en el período. Ingreso bruto desde los
// renglones de las órdenes (precios congelados); el COGS sale del movimiento
// OUT de cada renglón (total_cost negativo), por eso se suma con signo.
func (r *AnalyticsRepo) SalesSummary(ctx context.Context, from, to time.Time, limit int) ([]repository.SalesSummaryRow, error) {
	query := `
		SELECT p.id, p.sku, p.name,
		       SUM(i.quantity) AS units_sold,
		       SUM(i.quantity::numeric * i.unit_price) AS gross_revenue,
		       SUM(i.quantity::numeric * i.unit_price) + COALESCE(SUM(m.total_cost), 0) AS gross_profit
		FROM customer_order_items i
		JOIN customer_orders o ON o.id = i.order_id
		JOIN products p ON p.id = i.product_id
		LEFT JOIN inventory_movements m
		       ON m.reference_id = o.id AND m.product_id = i.product_id AND m.type = 'OUT'
		WHERE o.status <> 'CANCELED'
		  AND o.created_at >= $1 AND o.created_at < $2
		GROUP BY p.id, p.sku, p.name
		ORDER BY gross_revenue DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	defer rows.Close()

	var out []repository.SalesSummaryRow
	for rows.Next() {
		var row repository.SalesSummaryRow
		if err := rows.Scan(
			&row.ProductID, &row.SKU, &row.Name, &row.UnitsSold, &row.GrossRevenue, &row.GrossProfit,
		); err != nil {
			return nil, fmt.Errorf("scan sales summary: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
