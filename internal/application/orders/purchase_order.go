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
	domaininv "github.com/suministra/suministra-api/internal/domain/inventory"
	"github.com/suministra/suministra-api/internal/domain/packing"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

// PurchaseOrderUseCase crea órdenes de compra a fabricantes y las recibe.
// La recepción aplica los deltas empacados de cada renglón al inventario
// (modo packed), actualiza el costo promedio ponderado del producto y deja
// un movimiento IN por renglón, todo en una sola transacción.
type PurchaseOrderUseCase struct {
	txRunner         PurchaseTxRunner
	orderRepo        repository.PurchaseOrderRepository // lecturas fuera de tx
	manufacturerRepo repository.ManufacturerRepository
	productRepo      repository.ProductRepository
	mailer           Mailer
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner PurchaseTxRunner,
	orderRepo repository.PurchaseOrderRepository,
	manufacturerRepo repository.ManufacturerRepository,
	productRepo repository.ProductRepository,
	mailer Mailer,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:         txRunner,
		orderRepo:        orderRepo,
		manufacturerRepo: manufacturerRepo,
		productRepo:      productRepo,
		mailer:           mailer,
	}
}

// Create valida y persiste una orden de compra en estado PENDING.
// El total se calcula convirtiendo cada renglón empacado a pies²
// (PackedToQuantity) por su costo unitario.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, employeeID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.ManufacturerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	manufacturer, err := uc.manufacturerRepo.GetByID(in.ManufacturerID)
	if err != nil {
		return nil, err
	}
	if manufacturer == nil {
		return nil, domain.ErrNotFound
	}

	total := decimal.Zero
	items := make([]*entity.PurchaseOrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || (it.Pallets == 0 && it.Layers == 0) || it.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		spec := packing.Spec{FeetPerLayer: product.FeetPerLayer, LayersPerPallet: product.LayersPerPallet}
		qty, err := packing.PackedToQuantity(float64(it.Pallets), it.Layers, spec)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		if qty <= 0 {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(decimal.NewFromFloat(qty).Mul(it.UnitCost))
		items = append(items, &entity.PurchaseOrderItem{
			ID:        uuid.New().String(),
			ProductID: it.ProductID,
			Pallets:   it.Pallets,
			Layers:    it.Layers,
			UnitCost:  it.UnitCost,
		})
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:             uuid.New().String(),
		ManufacturerID: in.ManufacturerID,
		Status:         entity.PurchaseOrderPending,
		Total:          total,
		Notes:          in.Notes,
		CreatedBy:      employeeID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, it := range items {
		it.OrderID = order.ID
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		_ repository.InventoryMovementRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
	) error {
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
	return toPurchaseOrderResponse(order, items), nil
}

// Receive marca la orden como recibida y suma su mercancía al inventario.
// Cada renglón: bloquea la fila de stock, aplica el delta empacado, actualiza
// el costo promedio ponderado y deja un movimiento IN referenciando la orden.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, employeeID, orderID string) (*dto.PurchaseOrderResponse, error) {
	now := time.Now()
	var (
		order *entity.PurchaseOrder
		items []*entity.PurchaseOrderItem
	)

	err := uc.txRunner.RunPurchase(ctx, func(
		orderRepo repository.PurchaseOrderRepository,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.PurchaseOrderPending {
			return domain.ErrOrderAlreadyClosed
		}
		items, err = orderRepo.GetItems(orderID)
		if err != nil {
			return err
		}

		for _, it := range items {
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
				packing.Delta{Pallets: it.Pallets, Layers: it.Layers},
				spec,
				packing.ModePacked,
			)
			if err != nil {
				if errors.Is(err, packing.ErrInvalidPackingSpec) || errors.Is(err, packing.ErrNonFiniteInput) {
					return domain.ErrInvalidInput
				}
				return err
			}
			receivedQty := adj.Quantity - stock.Quantity

			// Costo promedio ponderado con la mercancía recibida
			newCost := domaininv.AverageCost(
				decimal.NewFromFloat(stock.Quantity), product.Cost,
				decimal.NewFromFloat(receivedQty), it.UnitCost,
			)
			if err := productRepo.UpdateCost(it.ProductID, newCost); err != nil {
				return err
			}

			stock.Quantity = adj.Quantity
			stock.Pallets = adj.Packed.Pallets
			stock.Layers = adj.Packed.Layers
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}

			mov := &entity.InventoryMovement{
				ID:           uuid.New().String(),
				ReferenceID:  order.ID,
				ProductID:    it.ProductID,
				Type:         entity.MovementTypeIN,
				Mode:         string(packing.ModePacked),
				Quantity:     receivedQty,
				DeltaPallets: it.Pallets,
				DeltaLayers:  it.Layers,
				UnitCost:     it.UnitCost,
				TotalCost:    decimal.NewFromFloat(receivedQty).Mul(it.UnitCost),
				Date:         now,
				CreatedAt:    now,
				CreatedBy:    employeeID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		order.Status = entity.PurchaseOrderReceived
		order.ReceivedAt = &now
		order.UpdatedAt = now
		return orderRepo.UpdateStatus(order)
	})
	if err != nil {
		return nil, err
	}

	// Notificación post-commit: un fallo de correo no revierte la recepción.
	if uc.mailer != nil {
		if manufacturer, err := uc.manufacturerRepo.GetByID(order.ManufacturerID); err == nil && manufacturer != nil {
			if err := uc.mailer.SendPurchaseOrderReceived(ctx, order, manufacturer); err != nil {
				log.Warn().Err(err).Str("order", order.Number).Msg("correo de recepción de orden de compra")
			}
		}
	}
	return toPurchaseOrderResponse(order, items), nil
}

// GetByID devuelve una orden de compra con sus renglones.
func (uc *PurchaseOrderUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
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
	return toPurchaseOrderResponse(order, items), nil
}

// List lista órdenes de compra, opcionalmente filtradas por estado.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, status string, limit, offset int) ([]dto.PurchaseOrderResponse, error) {
	list, err := uc.orderRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toPurchaseOrderResponse(o, nil))
	}
	return out, nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) *dto.PurchaseOrderResponse {
	resp := &dto.PurchaseOrderResponse{
		ID:             o.ID,
		Number:         o.Number,
		ManufacturerID: o.ManufacturerID,
		Status:         o.Status,
		Total:          o.Total,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		ReceivedAt:     o.ReceivedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseOrderItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Pallets:   it.Pallets,
			Layers:    it.Layers,
			UnitCost:  it.UnitCost,
		})
	}
	return resp
}
