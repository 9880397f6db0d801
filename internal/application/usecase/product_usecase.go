package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/suministra/suministra-api/internal/application/dto"
	"github.com/suministra/suministra-api/internal/domain"
	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/packing"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Cost y stock se manejan
// vía órdenes y ajustes, nunca por aquí.
type ProductUseCase struct {
	repo             repository.ProductRepository
	manufacturerRepo repository.ManufacturerRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, manufacturerRepo repository.ManufacturerRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, manufacturerRepo: manufacturerRepo}
}

// Create crea un producto. Valida el spec de empaque con el motor antes de
// persistir: un producto con constantes inválidas rompería todos sus ajustes.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ManufacturerID != "" {
		m, err := uc.manufacturerRepo.GetByID(in.ManufacturerID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrNotFound
		}
	}
	spec := packing.Spec{FeetPerLayer: in.FeetPerLayer, LayersPerPallet: in.LayersPerPallet}
	if err := spec.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !validTaxRate(in.TaxRate) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "SQFT"
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		SKU:             in.SKU,
		Name:            in.Name,
		Description:     in.Description,
		ManufacturerID:  in.ManufacturerID,
		Price:           in.Price,
		Cost:            decimal.Zero,
		TaxRate:         in.TaxRate,
		UnitMeasure:     in.UnitMeasure,
		FeetPerLayer:    in.FeetPerLayer,
		LayersPerPallet: in.LayersPerPallet,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Cost ni stock.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ManufacturerID != nil {
		m, err := uc.manufacturerRepo.GetByID(*in.ManufacturerID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, domain.ErrNotFound
		}
		product.ManufacturerID = *in.ManufacturerID
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.TaxRate != nil {
		if !validTaxRate(*in.TaxRate) {
			return nil, domain.ErrInvalidInput
		}
		product.TaxRate = *in.TaxRate
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.FeetPerLayer != nil {
		product.FeetPerLayer = *in.FeetPerLayer
	}
	if in.LayersPerPallet != nil {
		product.LayersPerPallet = *in.LayersPerPallet
	}
	// Revalidar el spec de empaque con los valores finales
	spec := packing.Spec{FeetPerLayer: product.FeetPerLayer, LayersPerPallet: product.LayersPerPallet}
	if err := spec.Validate(); err != nil {
		return nil, domain.ErrInvalidInput
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// validTaxRate solo admite las tarifas vigentes: 0%, 5% y 19%.
func validTaxRate(rate decimal.Decimal) bool {
	return rate.Equal(decimal.Zero) ||
		rate.Equal(decimal.NewFromInt(5)) ||
		rate.Equal(decimal.NewFromInt(19))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Description:     p.Description,
		ManufacturerID:  p.ManufacturerID,
		Price:           p.Price,
		Cost:            p.Cost,
		TaxRate:         p.TaxRate,
		UnitMeasure:     p.UnitMeasure,
		FeetPerLayer:    p.FeetPerLayer,
		LayersPerPallet: p.LayersPerPallet,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
