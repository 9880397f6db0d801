package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/suministra/suministra-api/internal/application/dto"
	"github.com/suministra/suministra-api/internal/domain"
	"github.com/suministra/suministra-api/internal/domain/entity"
	"github.com/suministra/suministra-api/internal/domain/repository"
	appjwt "github.com/suministra/suministra-api/pkg/jwt"
)

// TokenConfig parámetros de emisión de tokens JWT.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase registro y login de empleados.
type UseCase struct {
	repo  repository.EmployeeRepository
	token TokenConfig
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(repo repository.EmployeeRepository, token TokenConfig) *UseCase {
	return &UseCase{repo: repo, token: token}
}

// Register crea un empleado con su password en bcrypt. El email es único.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.EmployeeResponse, error) {
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVentas
	}
	if role != entity.RoleAdmin && role != entity.RoleVentas && role != entity.RoleBodega {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Login valida las credenciales y emite un JWT con employeeID y role.
// Credenciales inválidas y empleado inexistente devuelven el mismo error.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	employee, err := uc.repo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := appjwt.Generate(uc.token.Secret, employee.ID, employee.Role, uc.token.Issuer, uc.token.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Employee: *toEmployeeResponse(employee),
	}, nil
}

// GetByID obtiene un empleado por ID (perfil propio).
func (uc *UseCase) GetByID(id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return toEmployeeResponse(employee), nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:        e.ID,
		Email:     e.Email,
		Name:      e.Name,
		Role:      e.Role,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
