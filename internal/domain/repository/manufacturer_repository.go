package repository

import "github.com/suministra/suministra-api/internal/domain/entity"

// ManufacturerRepository puerto de persistencia para fabricantes.
type ManufacturerRepository interface {
	Create(m *entity.Manufacturer) error
	GetByID(id string) (*entity.Manufacturer, error)
	Update(m *entity.Manufacturer) error
	List(limit, offset int) ([]*entity.Manufacturer, error)
	Delete(id string) error
}
