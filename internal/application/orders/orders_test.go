package orders_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suministra/suministra-api/internal/application/dto"
	"github.com/suministra/suministra-api/internal/application/orders"
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

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(id string) error         { delete(r.products, id); return nil }
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

type fakeManufacturerRepo struct {
	manufacturers map[string]*entity.Manufacturer
}

func (r *fakeManufacturerRepo) Create(m *entity.Manufacturer) error { return nil }
func (r *fakeManufacturerRepo) GetByID(id string) (*entity.Manufacturer, error) {
	return r.manufacturers[id], nil
}
func (r *fakeManufacturerRepo) Update(m *entity.Manufacturer) error           { return nil }
func (r *fakeManufacturerRepo) List(int, int) ([]*entity.Manufacturer, error) { return nil, nil }
func (r *fakeManufacturerRepo) Delete(string) error                           { return nil }

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByDocument(string) (*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(c *entity.Customer) error                { return nil }
func (r *fakeCustomerRepo) List(int, int) ([]*entity.Customer, error)      { return nil, nil }

type fakePurchaseOrderRepo struct {
	orders map[string]*entity.PurchaseOrder
	items  map[string][]*entity.PurchaseOrderItem
	seq    int
}

func newFakePurchaseOrderRepo() *fakePurchaseOrderRepo {
	return &fakePurchaseOrderRepo{
		orders: map[string]*entity.PurchaseOrder{},
		items:  map[string][]*entity.PurchaseOrderItem{},
	}
}

func (r *fakePurchaseOrderRepo) Create(o *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) error {
	cp := *o
	r.orders[o.ID] = &cp
	r.items[o.ID] = items
	return nil
}

func (r *fakePurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePurchaseOrderRepo) GetItems(orderID string) ([]*entity.PurchaseOrderItem, error) {
	return r.items[orderID], nil
}

func (r *fakePurchaseOrderRepo) UpdateStatus(o *entity.PurchaseOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakePurchaseOrderRepo) List(string, int, int) ([]*entity.PurchaseOrder, error) {
	return nil, nil
}

func (r *fakePurchaseOrderRepo) NextNumber() (string, error) {
	r.seq++
	return fmt.Sprintf("OC-%06d", r.seq), nil
}

type fakeCustomerOrderRepo struct {
	orders map[string]*entity.CustomerOrder
	items  map[string][]*entity.CustomerOrderItem
	seq    int
}

func newFakeCustomerOrderRepo() *fakeCustomerOrderRepo {
	return &fakeCustomerOrderRepo{
		orders: map[string]*entity.CustomerOrder{},
		items:  map[string][]*entity.CustomerOrderItem{},
	}
}

func (r *fakeCustomerOrderRepo) Create(o *entity.CustomerOrder, items []*entity.CustomerOrderItem) error {
	cp := *o
	r.orders[o.ID] = &cp
	r.items[o.ID] = items
	return nil
}

func (r *fakeCustomerOrderRepo) GetByID(id string) (*entity.CustomerOrder, error) {
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCustomerOrderRepo) GetItems(orderID string) ([]*entity.CustomerOrderItem, error) {
	return r.items[orderID], nil
}

func (r *fakeCustomerOrderRepo) List(string, int, int) ([]*entity.CustomerOrder, error) {
	return nil, nil
}

func (r *fakeCustomerOrderRepo) NextNumber() (string, error) {
	r.seq++
	return fmt.Sprintf("OV-%06d", r.seq), nil
}

// fakeMailer registra las notificaciones enviadas.
type fakeMailer struct {
	confirmations int
	receipts      int
}

func (m *fakeMailer) SendCustomerOrderConfirmation(context.Context, *entity.CustomerOrder, *entity.Customer, []*entity.CustomerOrderItem) error {
	m.confirmations++
	return nil
}

func (m *fakeMailer) SendPurchaseOrderReceived(context.Context, *entity.PurchaseOrder, *entity.Manufacturer) error {
	m.receipts++
	return nil
}

// Los tx runners fake ejecutan el callback directamente con los repos en
// memoria (sin transacción real; la atomicidad se prueba en integración).
type fakePurchaseTx struct {
	orderRepo   *fakePurchaseOrderRepo
	movRepo     *fakeMovementRepo
	stockRepo   *fakeStockRepo
	productRepo *fakeProductRepo
}

func (r *fakePurchaseTx) RunPurchase(_ context.Context, fn func(
	orderRepo repository.PurchaseOrderRepository,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.orderRepo, r.movRepo, r.stockRepo, r.productRepo)
}

type fakeCustomerTx struct {
	orderRepo   *fakeCustomerOrderRepo
	movRepo     *fakeMovementRepo
	stockRepo   *fakeStockRepo
	productRepo *fakeProductRepo
}

func (r *fakeCustomerTx) RunCustomer(_ context.Context, fn func(
	orderRepo repository.CustomerOrderRepository,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.orderRepo, r.movRepo, r.stockRepo, r.productRepo)
}

// ── Setup ─────────────────────────────────────────────────────────────────────

const (
	testEmployeeID     = "00000000-0000-0000-0000-00000000000a"
	testManufacturerID = "manu-1"
	testCustomerID     = "cust-1"
)

type purchaseFixture struct {
	uc        *orders.PurchaseOrderUseCase
	orderRepo *fakePurchaseOrderRepo
	stockRepo *fakeStockRepo
	movRepo   *fakeMovementRepo
	products  *fakeProductRepo
	mailer    *fakeMailer
}

// Producto de referencia: 10 pies² por capa, 5 capas por estiba (50 pies²/estiba).
func seedProducts() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {
			ID:              "prod-1",
			SKU:             "LAM-ROBLE-8MM",
			Name:            "Laminado roble 8mm",
			Price:           decimal.NewFromInt(5),
			Cost:            decimal.Zero,
			TaxRate:         decimal.NewFromInt(19),
			FeetPerLayer:    10,
			LayersPerPallet: 5,
			CreatedAt:       time.Now(),
		},
	}}
}

func buildPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()
	orderRepo := newFakePurchaseOrderRepo()
	stockRepo := newFakeStockRepo()
	movRepo := &fakeMovementRepo{}
	products := seedProducts()
	manufacturers := &fakeManufacturerRepo{manufacturers: map[string]*entity.Manufacturer{
		testManufacturerID: {ID: testManufacturerID, Name: "Pisos del Norte", Email: "ventas@pisosdelnorte.co"},
	}}
	mailer := &fakeMailer{}
	runner := &fakePurchaseTx{orderRepo: orderRepo, movRepo: movRepo, stockRepo: stockRepo, productRepo: products}
	uc := orders.NewPurchaseOrderUseCase(runner, orderRepo, manufacturers, products, mailer)
	return &purchaseFixture{uc: uc, orderRepo: orderRepo, stockRepo: stockRepo, movRepo: movRepo, products: products, mailer: mailer}
}

func buildCustomerFixture(t *testing.T) (*orders.CustomerOrderUseCase, *fakeStockRepo, *fakeMovementRepo, *fakeMailer) {
	t.Helper()
	orderRepo := newFakeCustomerOrderRepo()
	stockRepo := newFakeStockRepo()
	movRepo := &fakeMovementRepo{}
	products := seedProducts()
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		testCustomerID: {ID: testCustomerID, Name: "Constructora Andina", Email: "compras@andina.co"},
	}}
	mailer := &fakeMailer{}
	runner := &fakeCustomerTx{orderRepo: orderRepo, movRepo: movRepo, stockRepo: stockRepo, productRepo: products}
	uc := orders.NewCustomerOrderUseCase(runner, orderRepo, customers, products, mailer)
	return uc, stockRepo, movRepo, mailer
}

// ── Órdenes de compra ─────────────────────────────────────────────────────────

// Crear una orden calcula el total convirtiendo cada renglón empacado a pies².
func TestPurchaseOrder_Create_CalculaTotal(t *testing.T) {
	f := buildPurchaseFixture(t)

	got, err := f.uc.Create(context.Background(), testEmployeeID, dto.CreatePurchaseOrderRequest{
		ManufacturerID: testManufacturerID,
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "prod-1", Pallets: 2, Layers: 1, UnitCost: decimal.RequireFromString("2.5")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "OC-000001", got.Number)
	assert.Equal(t, entity.PurchaseOrderPending, got.Status)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("275")),
		"2 estibas + 1 capa = 110 pies² a 2.5 son 275, no %s", got.Total)
	require.Len(t, got.Items, 1)
	assert.Empty(t, f.movRepo.movements, "crear la orden no debe tocar inventario")
}

// Validaciones de creación: fabricante vacío o inexistente, sin renglones,
// renglón sin cantidad y costo negativo.
func TestPurchaseOrder_Create_Validaciones(t *testing.T) {
	f := buildPurchaseFixture(t)
	ctx := context.Background()
	item := dto.PurchaseOrderItemRequest{ProductID: "prod-1", Pallets: 1, UnitCost: decimal.NewFromInt(2)}

	_, err := f.uc.Create(ctx, testEmployeeID, dto.CreatePurchaseOrderRequest{Items: []dto.PurchaseOrderItemRequest{item}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, testEmployeeID, dto.CreatePurchaseOrderRequest{ManufacturerID: testManufacturerID})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = f.uc.Create(ctx, testEmployeeID, dto.CreatePurchaseOrderRequest{
		ManufacturerID: "no-existe",
		Items:          []dto.PurchaseOrderItemRequest{item},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Create(ctx, testEmployeeID, dto.CreatePurchaseOrderRequest{
		ManufacturerID: testManufacturerID,
		Items:          []dto.PurchaseOrderItemRequest{{ProductID: "prod-1", UnitCost: decimal.NewFromInt(2)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un renglón sin estibas ni capas no pide nada")

	_, err = f.uc.Create(ctx, testEmployeeID, dto.CreatePurchaseOrderRequest{
		ManufacturerID: testManufacturerID,
		Items:          []dto.PurchaseOrderItemRequest{{ProductID: "prod-1", Pallets: 1, UnitCost: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Recibir la orden suma la mercancía al stock, deja movimiento IN por renglón
// y actualiza el costo promedio del producto.
func TestPurchaseOrder_Receive_AplicaInventarioYCosto(t *testing.T) {
	f := buildPurchaseFixture(t)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, testEmployeeID, dto.CreatePurchaseOrderRequest{
		ManufacturerID: testManufacturerID,
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "prod-1", Pallets: 2, Layers: 1, UnitCost: decimal.RequireFromString("2.5")},
		},
	})
	require.NoError(t, err)

	got, err := f.uc.Receive(ctx, testEmployeeID, created.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseOrderReceived, got.Status)
	require.NotNil(t, got.ReceivedAt)

	stock, _ := f.stockRepo.Get("prod-1")
	assert.InDelta(t, 110, stock.Quantity, 1e-9)
	assert.Equal(t, int64(2), stock.Pallets)
	assert.InDelta(t, 1, stock.Layers, 1e-9)

	product, _ := f.products.GetByID("prod-1")
	assert.True(t, product.Cost.Equal(decimal.RequireFromString("2.5")),
		"con stock inicial en cero el costo promedio es el de la recepción")

	require.Len(t, f.movRepo.movements, 1)
	mov := f.movRepo.movements[0]
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.Equal(t, created.ID, mov.ReferenceID)
	assert.InDelta(t, 110, mov.Quantity, 1e-9)
	assert.Equal(t, int64(2), mov.DeltaPallets)

	assert.Equal(t, 1, f.mailer.receipts, "la recepción notifica al fabricante")

	_, err = f.uc.Receive(ctx, testEmployeeID, created.ID)
	assert.ErrorIs(t, err, domain.ErrOrderAlreadyClosed, "recibir dos veces no duplica inventario")
}

// El costo promedio pondera el stock existente con la mercancía recibida.
func TestPurchaseOrder_Receive_PromediaCosto(t *testing.T) {
	f := buildPurchaseFixture(t)
	ctx := context.Background()

	// Stock previo: 50 pies² (1 estiba) a costo 2
	require.NoError(t, f.stockRepo.Upsert(&entity.Stock{ProductID: "prod-1", Quantity: 50, Pallets: 1}))
	f.products.products["prod-1"].Cost = decimal.NewFromInt(2)

	created, err := f.uc.Create(ctx, testEmployeeID, dto.CreatePurchaseOrderRequest{
		ManufacturerID: testManufacturerID,
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: "prod-1", Pallets: 1, UnitCost: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)

	_, err = f.uc.Receive(ctx, testEmployeeID, created.ID)
	require.NoError(t, err)

	product, _ := f.products.GetByID("prod-1")
	assert.True(t, product.Cost.Equal(decimal.NewFromInt(3)),
		"(50*2 + 50*4) / 100 = 3, no %s", product.Cost)

	stock, _ := f.stockRepo.Get("prod-1")
	assert.InDelta(t, 100, stock.Quantity, 1e-9)
	assert.Equal(t, int64(2), stock.Pallets)
}

// ── Órdenes de cliente ────────────────────────────────────────────────────────

// Colocar una orden congela precios, calcula totales con impuesto y descuenta
// el inventario dejando movimiento OUT.
func TestCustomerOrder_Place_DescuentaYTotaliza(t *testing.T) {
	uc, stockRepo, movRepo, mailer := buildCustomerFixture(t)

	require.NoError(t, stockRepo.Upsert(&entity.Stock{ProductID: "prod-1", Quantity: 100, Pallets: 2}))

	got, err := uc.Place(context.Background(), testEmployeeID, dto.CreateCustomerOrderRequest{
		CustomerID: testCustomerID,
		Items:      []dto.CustomerOrderItemRequest{{ProductID: "prod-1", Quantity: 10}},
	})
	require.NoError(t, err)

	assert.Equal(t, "OV-000001", got.Number)
	assert.Equal(t, entity.CustomerOrderPlaced, got.Status)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(50)), "10 pies² a 5 son 50")
	assert.True(t, got.Tax.Equal(decimal.RequireFromString("9.5")), "IVA del 19 por ciento sobre 50")
	assert.True(t, got.Total.Equal(decimal.RequireFromString("59.5")))
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.NewFromInt(5)), "el precio queda congelado en el renglón")

	stock, _ := stockRepo.Get("prod-1")
	assert.InDelta(t, 90, stock.Quantity, 1e-9)
	assert.Equal(t, int64(1), stock.Pallets, "90 pies² = 9 capas = 1 estiba + 4 capas")
	assert.InDelta(t, 4, stock.Layers, 1e-9)

	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeOUT, movRepo.movements[0].Type)
	assert.InDelta(t, -10, movRepo.movements[0].Quantity, 1e-9)

	assert.Equal(t, 1, mailer.confirmations)
}

// Vender más de lo que hay no falla: la orden queda BACKORDER y el stock negativo.
func TestCustomerOrder_Place_BackorderPermitido(t *testing.T) {
	uc, stockRepo, _, _ := buildCustomerFixture(t)

	require.NoError(t, stockRepo.Upsert(&entity.Stock{ProductID: "prod-1", Quantity: 20, Pallets: 0, Layers: 2}))

	got, err := uc.Place(context.Background(), testEmployeeID, dto.CreateCustomerOrderRequest{
		CustomerID: testCustomerID,
		Items:      []dto.CustomerOrderItemRequest{{ProductID: "prod-1", Quantity: 30}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CustomerOrderBackorder, got.Status)

	stock, _ := stockRepo.Get("prod-1")
	assert.InDelta(t, -10, stock.Quantity, 1e-9)
	assert.Equal(t, int64(-1), stock.Pallets, "el faltante respeta la convención de signo del empaque")
}

// Validaciones de colocación: cliente vacío o inexistente, sin renglones y
// cantidad no positiva.
func TestCustomerOrder_Place_Validaciones(t *testing.T) {
	uc, _, movRepo, _ := buildCustomerFixture(t)
	ctx := context.Background()
	item := dto.CustomerOrderItemRequest{ProductID: "prod-1", Quantity: 10}

	_, err := uc.Place(ctx, testEmployeeID, dto.CreateCustomerOrderRequest{Items: []dto.CustomerOrderItemRequest{item}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Place(ctx, testEmployeeID, dto.CreateCustomerOrderRequest{CustomerID: testCustomerID})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = uc.Place(ctx, testEmployeeID, dto.CreateCustomerOrderRequest{
		CustomerID: testCustomerID,
		Items:      []dto.CustomerOrderItemRequest{{ProductID: "prod-1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Place(ctx, testEmployeeID, dto.CreateCustomerOrderRequest{
		CustomerID: "no-existe",
		Items:      []dto.CustomerOrderItemRequest{item},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, movRepo.movements, "ninguna validación fallida debe dejar movimientos")
}
