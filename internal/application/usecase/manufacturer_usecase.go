package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/suministra/suministra-api/internal/application/dto"
	"github.com/suministra/suministra-api/internal/domain"
	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/repository"
)

// ManufacturerUseCase CRUD de fabricantes.
type ManufacturerUseCase struct {
	repo repository.ManufacturerRepository
}

func NewManufacturerUseCase(repo repository.ManufacturerRepository) *ManufacturerUseCase {
	return &ManufacturerUseCase{repo: repo}
}

// Create crea un fabricante.
func (uc *ManufacturerUseCase) Create(in dto.CreateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	m := &entity.Manufacturer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(m); err != nil {
		return nil, err
	}
	return toManufacturerResponse(m), nil
}

// GetByID obtiene un fabricante por ID.
func (uc *ManufacturerUseCase) GetByID(id string) (*dto.ManufacturerResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toManufacturerResponse(m), nil
}

// Update actualiza un fabricante.
func (uc *ManufacturerUseCase) Update(id string, in dto.UpdateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		m.Name = *in.Name
	}
	if in.TaxID != nil {
		m.TaxID = *in.TaxID
	}
	if in.Email != nil {
		m.Email = *in.Email
	}
	if in.Phone != nil {
		m.Phone = *in.Phone
	}
	if in.Address != nil {
		m.Address = *in.Address
	}
	if in.City != nil {
		m.City = *in.City
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(m); err != nil {
		return nil, err
	}
	return toManufacturerResponse(m), nil
}

// List lista fabricantes con paginación.
func (uc *ManufacturerUseCase) List(limit, offset int) (*dto.ManufacturerListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ManufacturerResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toManufacturerResponse(m))
	}
	return &dto.ManufacturerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un fabricante.
func (uc *ManufacturerUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toManufacturerResponse(m *entity.Manufacturer) *dto.ManufacturerResponse {
	return &dto.ManufacturerResponse{
		ID:        m.ID,
		Name:      m.Name,
		TaxID:     m.TaxID,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		City:      m.City,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
