package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/suministra/suministra-api/internal/application/dto"
	"github.com/suministra/suministra-api/internal/domain"
	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/packing"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

// CustomerOrderUseCase coloca órdenes de la tienda. Cada renglón descuenta
// su cantidad del inventario en modo quantity; se permite quedar en negativo
// (backorder) y en ese caso la orden entera se marca BACKORDER.
type CustomerOrderUseCase struct {
	txRunner     CustomerTxRunner
	orderRepo    repository.CustomerOrderRepository // lecturas fuera de tx
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	mailer       Mailer
}

// NewCustomerOrderUseCase construye el caso de uso.
func NewCustomerOrderUseCase(
	txRunner CustomerTxRunner,
	orderRepo repository.CustomerOrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	mailer Mailer,
) *CustomerOrderUseCase {
	return &CustomerOrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		mailer:       mailer,
	}
}

// Place valida la orden, descuenta inventario y persiste orden + renglones +
// movimientos en una sola transacción. Los precios se congelan al momento de
// la venta; subtotal/impuesto/total se calculan con decimales.
func (uc *CustomerOrderUseCase) Place(ctx context.Context, employeeID string, in dto.CreateCustomerOrderRequest) (*dto.CustomerOrderResponse, error) {
	if in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	order := &entity.CustomerOrder{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Status:     entity.CustomerOrderPlaced,
		Notes:      in.Notes,
		CreatedBy:  employeeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var items []*entity.CustomerOrderItem

	err = uc.txRunner.RunCustomer(ctx, func(
		orderRepo repository.CustomerOrderRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		subtotal := decimal.Zero
		tax := decimal.Zero
		backorder := false
		hundred := decimal.NewFromInt(100)

		for _, it := range in.Items {
			product, err := productRepo.GetByID(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			spec := packing.Spec{FeetPerLayer: product.FeetPerLayer, LayersPerPallet: product.LayersPerPallet}

			stock, err := stockRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			adj, err := packing.ApplyDelta(
				packing.StockLevel{Quantity: stock.Quantity, Pallets: stock.Pallets, Layers: stock.Layers},
				packing.Delta{Quantity: -it.Quantity},
				spec,
				packing.ModeQuantity,
			)
			if err != nil {
				if errors.Is(err, packing.ErrInvalidPackingSpec) || errors.Is(err, packing.ErrNonFiniteInput) {
					return domain.ErrInvalidInput
				}
				return err
			}
			if adj.Quantity < 0 {
				backorder = true
			}

			stock.Quantity = adj.Quantity
			stock.Pallets = adj.Packed.Pallets
			stock.Layers = adj.Packed.Layers
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}

			qty := decimal.NewFromFloat(it.Quantity)
			lineSubtotal := qty.Mul(product.Price)
			lineTax := lineSubtotal.Mul(product.TaxRate).Div(hundred)
			subtotal = subtotal.Add(lineSubtotal)
			tax = tax.Add(lineTax)

			items = append(items, &entity.CustomerOrderItem{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: product.Price,
				TaxRate:   product.TaxRate,
				LineTotal: lineSubtotal.Add(lineTax),
			})

			mov := &entity.InventoryMovement{
				ID:          uuid.New().String(),
				ReferenceID: order.ID,
				ProductID:   it.ProductID,
				Type:        entity.MovementTypeOUT,
				Mode:        string(packing.ModeQuantity),
				Quantity:    -it.Quantity,
				UnitCost:    product.Cost,
				TotalCost:   qty.Neg().Mul(product.Cost),
				Date:        now,
				CreatedAt:   now,
				CreatedBy:   employeeID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		order.Subtotal = subtotal
		order.Tax = tax
		order.Total = subtotal.Add(tax)
		if backorder {
			order.Status = entity.CustomerOrderBackorder
		}
		number, err := orderRepo.NextNumber()
		if err != nil {
			return err
		}
		order.Number = number
		return orderRepo.Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	// Confirmación post-commit: un fallo de correo no revierte la orden.
	if uc.mailer != nil && customer.Email != "" {
		if err := uc.mailer.SendCustomerOrderConfirmation(ctx, order, customer, items); err != nil {
			log.Warn().Err(err).Str("order", order.Number).Msg("correo de confirmación de orden")
		}
	}
	return toCustomerOrderResponse(order, items), nil
}

// GetByID devuelve una orden de cliente con sus renglones.
func (uc *CustomerOrderUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	items, err := uc.orderRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toCustomerOrderResponse(order, items), nil
}

// List lista órdenes de cliente, opcionalmente filtradas por estado.
func (uc *CustomerOrderUseCase) List(ctx context.Context, status string, limit, offset int) ([]dto.CustomerOrderResponse, error) {
	list, err := uc.orderRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toCustomerOrderResponse(o, nil))
	}
	return out, nil
}

func toCustomerOrderResponse(o *entity.CustomerOrder, items []*entity.CustomerOrderItem) *dto.CustomerOrderResponse {
	resp := &dto.CustomerOrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Subtotal:   o.Subtotal,
		Tax:        o.Tax,
		Total:      o.Total,
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.CustomerOrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxRate:   it.TaxRate,
			LineTotal: it.LineTotal,
		})
	}
	return resp
}
