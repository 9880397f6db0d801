package orders

import (
	"context"

	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

// PurchaseTxRunner transacción para crear/recibir órdenes de compra:
// repos de la orden más los de inventario, todos atados a la misma tx.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		orderRepo repository.PurchaseOrderRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// CustomerTxRunner transacción para colocar órdenes de cliente.
type CustomerTxRunner interface {
	RunCustomer(ctx context.Context, fn func(
		orderRepo repository.CustomerOrderRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Mailer puerto de notificaciones transaccionales. Las implementaciones
// deben ser seguras de llamar después del commit; un fallo de correo no
// revierte la orden.
type Mailer interface {
	SendCustomerOrderConfirmation(ctx context.Context, order *entity.CustomerOrder, customer *entity.Customer, items []*entity.CustomerOrderItem) error
	SendPurchaseOrderReceived(ctx context.Context, order *entity.PurchaseOrder, manufacturer *entity.Manufacturer) error
}
