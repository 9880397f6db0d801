package repository

import "github.com/suministra/suministra-api/internal/domain/entity"

// EmployeeRepository puerto de persistencia para empleados.
type EmployeeRepository interface {
	Create(e *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	FindByEmail(email string) (*entity.Employee, error)
	List(limit, offset int) ([]*entity.Employee, error)
}
