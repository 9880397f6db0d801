package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/suministra/suministra-api/internal/domain"
	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

var _ repository.ManufacturerRepository = (*ManufacturerRepo)(nil)

// ManufacturerRepo implementación del puerto ManufacturerRepository sobre PostgreSQL.
type ManufacturerRepo struct {
	q Querier
}

// NewManufacturerRepository construye el adaptador de persistencia para fabricantes.
func NewManufacturerRepository(q Querier) *ManufacturerRepo {
	return &ManufacturerRepo{q: q}
}

const manufacturerColumns = `id, name, tax_id, email, phone, address, city, notes, created_at, updated_at`

// Create persiste un nuevo fabricante.
func (r *ManufacturerRepo) Create(m *entity.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (` + manufacturerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.TaxID, m.Email, m.Phone, m.Address, m.City, m.Notes, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert manufacturer: %w", err)
	}
	return nil
}

// GetByID obtiene un fabricante por ID.
func (r *ManufacturerRepo) GetByID(id string) (*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + ` FROM manufacturers WHERE id = $1`
	var m entity.Manufacturer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.TaxID, &m.Email, &m.Phone, &m.Address, &m.City, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturer: %w", err)
	}
	return &m, nil
}

// Update actualiza un fabricante existente.
func (r *ManufacturerRepo) Update(m *entity.Manufacturer) error {
	query := `
		UPDATE manufacturers
		SET name = $2, tax_id = $3, email = $4, phone = $5, address = $6, city = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.TaxID, m.Email, m.Phone, m.Address, m.City, m.Notes, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update manufacturer: %w", err)
	}
	return nil
}

// List lista fabricantes con paginación.
func (r *ManufacturerRepo) List(limit, offset int) ([]*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + ` FROM manufacturers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Manufacturer
	for rows.Next() {
		var m entity.Manufacturer
		if err := rows.Scan(
			&m.ID, &m.Name, &m.TaxID, &m.Email, &m.Phone, &m.Address, &m.City, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan manufacturer: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina un fabricante por ID. Si tiene productos u órdenes de compra
// asociadas la restricción de llave foránea lo impide y se devuelve ErrConflict.
func (r *ManufacturerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete manufacturer: %w", err)
	}
	return nil
}
