package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suministra/suministra-api/internal/application/dto"
	appinventory "github.com/suministra/suministra-api/internal/application/inventory"
	"github.com/suministra/suministra-api/internal/domain"
	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

type fakeStockRepo struct {
	stocks map[string]*entity.Stock
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stocks: map[string]*entity.Stock{}}
}

func (r *fakeStockRepo) Get(productID string) (*entity.Stock, error) {
	if s, ok := r.stocks[productID]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{ProductID: productID}, nil
}

func (r *fakeStockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	return r.Get(productID)
}

func (r *fakeStockRepo) Upsert(stock *entity.Stock) error {
	cp := *stock
	r.stocks[stock.ProductID] = &cp
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error  { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Update(p *entity.Product) error  { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(id string) error          { delete(r.products, id); return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) UpdateCost(id string, cost decimal.Decimal) error {
	if p, ok := r.products[id]; ok {
		p.Cost = cost
	}
	return nil
}
func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *fakeMovementRepo) ListByProduct(string, int, int) ([]*entity.InventoryMovement, error) {
	return r.movements, nil
}

// fakeTxRunner ejecuta el callback directamente con los repos en memoria
// (sin transacción real; la atomicidad se prueba en integración).
type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	stockRepo   *fakeStockRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.movRepo, r.stockRepo, r.productRepo)
}

// ── Setup ─────────────────────────────────────────────────────────────────────

const testEmployeeID = "00000000-0000-0000-0000-00000000000a"

func buildUseCase(t *testing.T) (*appinventory.AdjustStockUseCase, *fakeStockRepo, *fakeMovementRepo) {
	t.Helper()
	stockRepo := newFakeStockRepo()
	movRepo := &fakeMovementRepo{}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {
			ID:              "prod-1",
			SKU:             "LAM-ROBLE-8MM",
			Name:            "Laminado roble 8mm",
			Cost:            decimal.NewFromInt(2),
			FeetPerLayer:    10,
			LayersPerPallet: 5,
			CreatedAt:       time.Now(),
		},
	}}
	runner := &fakeTxRunner{movRepo: movRepo, stockRepo: stockRepo, productRepo: productRepo}
	return appinventory.NewAdjustStockUseCase(runner, productRepo, stockRepo, movRepo), stockRepo, movRepo
}

// ── Tests ─────────────────────────────────────────────────────────────────────

// Un ajuste en modo quantity recalcula estibas/capas con el motor de empaque.
func TestAdjust_ModoQuantity_ActualizaAmbasRepresentaciones(t *testing.T) {
	uc, stockRepo, movRepo := buildUseCase(t)

	got, err := uc.Adjust(context.Background(), testEmployeeID, dto.AdjustStockRequest{
		ProductID: "prod-1",
		Mode:      "quantity",
		Quantity:  103,
	})
	require.NoError(t, err)

	assert.InDelta(t, 103, got.Quantity, 1e-9)
	assert.Equal(t, int64(2), got.Pallets, "103 pies² = 11 capas = 2 estibas + 1 capa")
	assert.InDelta(t, 1, got.Layers, 1e-9)
	assert.False(t, got.Backorder)

	persisted, _ := stockRepo.Get("prod-1")
	assert.Equal(t, int64(2), persisted.Pallets, "el stock persistido debe coincidir con la respuesta")

	require.Len(t, movRepo.movements, 1, "debe quedar un movimiento de auditoría")
	mov := movRepo.movements[0]
	assert.Equal(t, entity.MovementTypeADJUSTMENT, mov.Type)
	assert.Equal(t, "quantity", mov.Mode)
	assert.InDelta(t, 103, mov.Quantity, 1e-9)
	assert.Equal(t, testEmployeeID, mov.CreatedBy)
}

// Un ajuste en modo packed deriva la cantidad del resultado empacado.
func TestAdjust_ModoPacked_DerivaCantidad(t *testing.T) {
	uc, _, _ := buildUseCase(t)

	got, err := uc.Adjust(context.Background(), testEmployeeID, dto.AdjustStockRequest{
		ProductID: "prod-1",
		Mode:      "packed",
		Pallets:   1,
		Layers:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.Pallets)
	assert.InDelta(t, 2, got.Layers, 1e-9)
	assert.InDelta(t, 70, got.Quantity, 1e-9, "1 estiba + 2 capas a 10 pies²/capa son 70 pies²")
}

// Una salida mayor al stock deja backorder (stock negativo) sin error.
func TestAdjust_SalidaMayorAlStock_DejaBackorder(t *testing.T) {
	uc, _, _ := buildUseCase(t)

	_, err := uc.Adjust(context.Background(), testEmployeeID, dto.AdjustStockRequest{
		ProductID: "prod-1", Mode: "quantity", Quantity: 20,
	})
	require.NoError(t, err)

	got, err := uc.Adjust(context.Background(), testEmployeeID, dto.AdjustStockRequest{
		ProductID: "prod-1", Mode: "quantity", Quantity: -25,
	})
	require.NoError(t, err)

	assert.InDelta(t, -5, got.Quantity, 1e-9)
	assert.True(t, got.Backorder)
	assert.Equal(t, int64(-1), got.Pallets)
	assert.InDelta(t, -1, got.Layers, 1e-9, "backorder debe respetar la convención de signo")
}

// Modo desconocido y producto inexistente se rechazan antes de abrir transacción.
func TestAdjust_Validaciones(t *testing.T) {
	uc, _, movRepo := buildUseCase(t)

	_, err := uc.Adjust(context.Background(), testEmployeeID, dto.AdjustStockRequest{
		ProductID: "prod-1", Mode: "ambos", Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Adjust(context.Background(), testEmployeeID, dto.AdjustStockRequest{
		ProductID: "no-existe", Mode: "quantity", Quantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Adjust(context.Background(), testEmployeeID, dto.AdjustStockRequest{
		ProductID: "prod-1", Mode: "quantity", Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta cero no es un ajuste")

	assert.Empty(t, movRepo.movements, "ninguna validación fallida debe dejar movimientos")
}

// Un producto con spec de empaque inválido (capas por estiba en 0) falla con
// ErrInvalidInput al intentar el ajuste.
func TestAdjust_SpecInvalidoDelProducto(t *testing.T) {
	stockRepo := newFakeStockRepo()
	movRepo := &fakeMovementRepo{}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-roto": {ID: "prod-roto", FeetPerLayer: 0, LayersPerPallet: 5},
	}}
	runner := &fakeTxRunner{movRepo: movRepo, stockRepo: stockRepo, productRepo: productRepo}
	uc := appinventory.NewAdjustStockUseCase(runner, productRepo, stockRepo, movRepo)

	_, err := uc.Adjust(context.Background(), testEmployeeID, dto.AdjustStockRequest{
		ProductID: "prod-roto", Mode: "quantity", Quantity: 50,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
