package repository

import "github.com/suministra/suministra-api/internal/domain/entity"

// CustomerOrderRepository puerto de persistencia para órdenes de cliente.
type CustomerOrderRepository interface {
	Create(order *entity.CustomerOrder, items []*entity.CustomerOrderItem) error
	GetByID(id string) (*entity.CustomerOrder, error)
	GetItems(orderID string) ([]*entity.CustomerOrderItem, error)
	List(status string, limit, offset int) ([]*entity.CustomerOrder, error)
	NextNumber() (string, error)
}
