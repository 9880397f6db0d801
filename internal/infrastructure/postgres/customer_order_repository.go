package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

var _ repository.CustomerOrderRepository = (*CustomerOrderRepo)(nil)

// CustomerOrderRepo implementación del puerto CustomerOrderRepository sobre PostgreSQL.
type CustomerOrderRepo struct {
	q Querier
}

// NewCustomerOrderRepository construye el adaptador de persistencia para órdenes de cliente.
func NewCustomerOrderRepository(q Querier) *CustomerOrderRepo {
	return &CustomerOrderRepo{q: q}
}

const customerOrderColumns = `id, number, customer_id, status, subtotal, tax, total, notes, created_by, created_at, updated_at`

// Create persiste la orden y sus renglones. Debe llamarse dentro de una transacción.
func (r *CustomerOrderRepo) Create(order *entity.CustomerOrder, items []*entity.CustomerOrderItem) error {
	query := `
		INSERT INTO customer_orders (` + customerOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.CustomerID, order.Status, order.Subtotal,
		order.Tax, order.Total, order.Notes, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer order: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO customer_order_items (id, order_id, product_id, quantity, unit_price, tax_rate, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.TaxRate, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert customer order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden de cliente por ID.
func (r *CustomerOrderRepo) GetByID(id string) (*entity.CustomerOrder, error) {
	query := `SELECT ` + customerOrderColumns + ` FROM customer_orders WHERE id = $1`
	var o entity.CustomerOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Number, &o.CustomerID, &o.Status, &o.Subtotal,
		&o.Tax, &o.Total, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer order: %w", err)
	}
	return &o, nil
}

// GetItems obtiene los renglones de una orden de cliente.
func (r *CustomerOrderRepo) GetItems(orderID string) ([]*entity.CustomerOrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, tax_rate, line_total
		FROM customer_order_items WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get customer order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.CustomerOrderItem
	for rows.Next() {
		var it entity.CustomerOrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TaxRate, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan customer order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista órdenes de cliente, opcionalmente filtradas por estado.
func (r *CustomerOrderRepo) List(status string, limit, offset int) ([]*entity.CustomerOrder, error) {
	query := `
		SELECT ` + customerOrderColumns + `
		FROM customer_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustomerOrder
	for rows.Next() {
		var o entity.CustomerOrder
		if err := rows.Scan(
			&o.ID, &o.Number, &o.CustomerID, &o.Status, &o.Subtotal,
			&o.Tax, &o.Total, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// NextNumber genera el siguiente consecutivo legible (OV-000123) desde una secuencia.
func (r *CustomerOrderRepo) NextNumber() (string, error) {
	var n int64
	if err := r.q.QueryRow(context.Background(), `SELECT nextval('customer_order_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("next customer order number: %w", err)
	}
	return fmt.Sprintf("OV-%06d", n), nil
}
