package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/suministra/suministra-api/internal/application/dto"
	"github.com/suministra/suministra-api/internal/domain"
	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/packing"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

// AdjustStockUseCase aplica ajustes manuales de inventario de forma
// transaccional: bloquea la fila de stock (SELECT FOR UPDATE), corre el motor
// de empaque sobre el delta (en modo packed o quantity) y guarda el nuevo
// nivel junto con su movimiento de auditoría. El resultado puede quedar
// negativo (backorder).
type AdjustStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository // lecturas fuera de transacción
	movRepo     repository.InventoryMovementRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, productRepo repository.ProductRepository, stockRepo repository.StockRepository, movRepo repository.InventoryMovementRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, productRepo: productRepo, stockRepo: stockRepo, movRepo: movRepo}
}

// Adjust valida la petición, aplica el delta y devuelve el stock resultante.
// Los errores del motor (spec inválido, modo desconocido, entrada no finita)
// se traducen a ErrInvalidInput: son errores del caller, no del sistema.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, employeeID string, in dto.AdjustStockRequest) (*dto.StockResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	mode := packing.DeltaMode(in.Mode)
	if mode != packing.ModePacked && mode != packing.ModeQuantity {
		return nil, domain.ErrInvalidInput
	}
	if mode == packing.ModeQuantity && in.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if mode == packing.ModePacked && in.Pallets == 0 && in.Layers == 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	spec := packing.Spec{
		FeetPerLayer:    product.FeetPerLayer,
		LayersPerPallet: product.LayersPerPallet,
	}

	now := time.Now()
	var result *dto.StockResponse

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		// Bloquea la fila de stock para serializar ajustes concurrentes
		stock, err := stockRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}

		adj, err := packing.ApplyDelta(
			packing.StockLevel{Quantity: stock.Quantity, Pallets: stock.Pallets, Layers: stock.Layers},
			packing.Delta{Quantity: in.Quantity, Pallets: in.Pallets, Layers: in.Layers},
			spec,
			mode,
		)
		if err != nil {
			if errors.Is(err, packing.ErrInvalidPackingSpec) ||
				errors.Is(err, packing.ErrInvalidDeltaMode) ||
				errors.Is(err, packing.ErrNonFiniteInput) {
				return domain.ErrInvalidInput
			}
			return err
		}

		deltaQty := adj.Quantity - stock.Quantity
		stock.Quantity = adj.Quantity
		stock.Pallets = adj.Packed.Pallets
		stock.Layers = adj.Packed.Layers
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}

		mov := &entity.InventoryMovement{
			ID:           uuid.New().String(),
			ProductID:    in.ProductID,
			Type:         entity.MovementTypeADJUSTMENT,
			Mode:         string(mode),
			Quantity:     deltaQty,
			DeltaPallets: in.Pallets,
			DeltaLayers:  in.Layers,
			UnitCost:     product.Cost,
			TotalCost:    decimal.NewFromFloat(deltaQty).Mul(product.Cost),
			Date:         now,
			CreatedAt:    now,
			CreatedBy:    employeeID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		result = &dto.StockResponse{
			ProductID: stock.ProductID,
			Quantity:  stock.Quantity,
			Pallets:   stock.Pallets,
			Layers:    stock.Layers,
			Backorder: stock.Quantity < 0,
			UpdatedAt: stock.UpdatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetStock devuelve el nivel actual de stock de un producto (sin bloqueo).
func (uc *AdjustStockUseCase) GetStock(ctx context.Context, productID string) (*dto.StockResponse, error) {
	stock, err := uc.stockRepo.Get(productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID: stock.ProductID,
		Quantity:  stock.Quantity,
		Pallets:   stock.Pallets,
		Layers:    stock.Layers,
		Backorder: stock.Quantity < 0,
		UpdatedAt: stock.UpdatedAt,
	}, nil
}

// ListMovements devuelve el historial de movimientos de un producto.
func (uc *AdjustStockUseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:           m.ID,
			ReferenceID:  m.ReferenceID,
			ProductID:    m.ProductID,
			Type:         m.Type,
			Mode:         m.Mode,
			Quantity:     m.Quantity,
			DeltaPallets: m.DeltaPallets,
			DeltaLayers:  m.DeltaLayers,
			UnitCost:     m.UnitCost,
			TotalCost:    m.TotalCost,
			Date:         m.Date,
			CreatedBy:    m.CreatedBy,
		})
	}
	return out, nil
}
