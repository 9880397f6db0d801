package usecase_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suministra/suministra-api/internal/application/dto"
	"github.com/suministra/suministra-api/internal/application/usecase"
	"github.com/suministra/suministra-api/internal/domain"
	"github.com/suministra/suministra-api/internal/domain/entity"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
	bySKU    map[string]*entity.Product
	skuErr   error // error inyectado para GetBySKU
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}, bySKU: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	r.bySKU[p.SKU] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	if r.skuErr != nil {
		return nil, r.skuErr
	}
	return r.bySKU[sku], nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error           { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateCost(string, decimal.Decimal) error { return nil }
func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error                   { delete(r.products, id); return nil }

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
	byDoc     map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*entity.Customer{}, byDoc: map[string]*entity.Customer{}}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.customers[c.ID] = c
	r.byDoc[c.Document] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) { return r.customers[id], nil }

func (r *fakeCustomerRepo) GetByDocument(doc string) (*entity.Customer, error) {
	return r.byDoc[doc], nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error           { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) List(int, int) ([]*entity.Customer, error) { return nil, nil }

// ── Setup ─────────────────────────────────────────────────────────────────────

const testManufacturerID = "manu-1"

func buildProductUseCase() (*usecase.ProductUseCase, *fakeProductRepo) {
	repo := newFakeProductRepo()
	manufacturers := &fakeManufacturerRepo{manufacturers: map[string]*entity.Manufacturer{
		testManufacturerID: {ID: testManufacturerID, Name: "Pisos del Norte"},
	}}
	return usecase.NewProductUseCase(repo, manufacturers), repo
}

func requestLaminado() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:             "LAM-ROBLE-8MM",
		Name:            "Laminado roble 8mm",
		ManufacturerID:  testManufacturerID,
		Price:           decimal.NewFromInt(5),
		TaxRate:         decimal.NewFromInt(19),
		FeetPerLayer:    10,
		LayersPerPallet: 5,
	}
}

// ── Productos ─────────────────────────────────────────────────────────────────

func TestProductCreate_Valido(t *testing.T) {
	uc, _ := buildProductUseCase()

	got, err := uc.Create(requestLaminado())
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "SQFT", got.UnitMeasure, "la unidad por defecto es SQFT")
	assert.True(t, got.Cost.Equal(decimal.Zero), "el costo inicia en cero y se calcula al recibir compras")
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc, _ := buildProductUseCase()

	_, err := uc.Create(requestLaminado())
	require.NoError(t, err)

	_, err = uc.Create(requestLaminado())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Un error del repositorio al consultar el SKU se propaga: no puede tratarse
// como "SKU disponible" porque duplicaría productos durante una caída.
func TestProductCreate_ErrorAlConsultarSKUSePropaga(t *testing.T) {
	uc, repo := buildProductUseCase()
	errCaida := errors.New("conexión perdida")
	repo.skuErr = errCaida

	_, err := uc.Create(requestLaminado())
	assert.ErrorIs(t, err, errCaida)
	assert.Empty(t, repo.products, "nada debe persistirse cuando la verificación de SKU falla")
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc, _ := buildProductUseCase()

	in := requestLaminado()
	in.SKU = ""
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = requestLaminado()
	in.LayersPerPallet = 0
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "spec de empaque inválido debe rechazarse")

	in = requestLaminado()
	in.TaxRate = decimal.NewFromInt(7)
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "solo se admiten tarifas 0, 5 y 19")

	in = requestLaminado()
	in.ManufacturerID = "no-existe"
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func TestCustomerCreate_DocumentoDuplicado(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newFakeCustomerRepo())

	_, err := uc.Create(dto.CreateCustomerRequest{Name: "Constructora Andina", Document: "900123456"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateCustomerRequest{Name: "Otra razón social", Document: "900123456"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El documento es inmutable: Update solo toca los datos de contacto.
func TestCustomerUpdate_DocumentoInmutable(t *testing.T) {
	repo := newFakeCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)

	created, err := uc.Create(dto.CreateCustomerRequest{
		Name:     "Constructora Andina",
		Document: "900123456",
		Email:    "compras@andina.co",
	})
	require.NoError(t, err)

	nuevoEmail := "facturacion@andina.co"
	got, err := uc.Update(created.ID, dto.UpdateCustomerRequest{Email: &nuevoEmail})
	require.NoError(t, err)

	assert.Equal(t, nuevoEmail, got.Email)
	assert.Equal(t, "900123456", got.Document)
	assert.True(t, got.UpdatedAt.After(created.CreatedAt) || got.UpdatedAt.Equal(created.CreatedAt))
}

func TestCustomerUpdate_NombreVacioSeRechaza(t *testing.T) {
	repo := newFakeCustomerRepo()
	uc := usecase.NewCustomerUseCase(repo)

	created, err := uc.Create(dto.CreateCustomerRequest{Name: "Constructora Andina", Document: "900123456"})
	require.NoError(t, err)

	vacio := ""
	_, err = uc.Update(created.ID, dto.UpdateCustomerRequest{Name: &vacio})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
