package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/domain"
	"github.com/maheshk/workpulse/internal/repository"
	"github.com/maheshk/workpulse/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	tokens       *token.Service
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, tokens *token.Service) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		tokens:       tokens,
	}
}

type AddEmployeeInput struct {
	Name     string
	Email    string
	Password string
}

type EmployeeAuthResult struct {
	Employee *domain.Employee
	Token    string
}

// Add creates an employee in the admin's own company and returns a token at
// version 0. The tenant always comes from the resolved identity, never from
// the request payload.
func (s *EmployeeService) Add(ctx context.Context, companyID uuid.UUID, input AddEmployeeInput) (*EmployeeAuthResult, error) {
	taken, err := s.employeeRepo.ExistsByEmail(ctx, companyID, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		CompanyID:    companyID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
		TokenVersion: 0,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		// A concurrent add can slip past ExistsByEmail; the composite unique
		// index is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	accessToken, err := s.tokens.IssueEmployee(employee.ID, employee.TokenVersion)
	if err != nil {
		return nil, err
	}

	return &EmployeeAuthResult{Employee: employee, Token: accessToken}, nil
}

func (s *EmployeeService) List(ctx context.Context, companyID uuid.UUID) ([]*domain.Employee, error) {
	return s.employeeRepo.ListByCompany(ctx, companyID)
}

func (s *EmployeeService) Search(ctx context.Context, companyID uuid.UUID, query string) ([]*domain.Employee, error) {
	return s.employeeRepo.SearchByName(ctx, companyID, query)
}

// ToggleStatus flips isActive for an employee of the admin's company. A
// deactivated employee cannot authenticate regardless of token validity.
func (s *EmployeeService) ToggleStatus(ctx context.Context, companyID, employeeID uuid.UUID) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByIDForCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	employee.IsActive = !employee.IsActive
	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

// RevokeTokens bumps the employee's token version, invalidating every token
// issued before the bump without tracking individual tokens.
func (s *EmployeeService) RevokeTokens(ctx context.Context, companyID, employeeID uuid.UUID) (*domain.Employee, error) {
	if _, err := s.employeeRepo.GetByIDForCompany(ctx, companyID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	return s.employeeRepo.IncrementTokenVersion(ctx, employeeID)
}

// Login authenticates an employee by email and password. Emails are only
// unique per company, so every candidate row is checked until the password
// matches an active account.
func (s *EmployeeService) Login(ctx context.Context, email, password string) (*EmployeeAuthResult, error) {
	candidates, err := s.employeeRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	for _, employee := range candidates {
		if !employee.IsActive {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)) != nil {
			continue
		}

		// Minted on the fly at the stored version, never persisted.
		accessToken, err := s.tokens.IssueEmployee(employee.ID, employee.TokenVersion)
		if err != nil {
			return nil, err
		}
		return &EmployeeAuthResult{Employee: employee, Token: accessToken}, nil
	}

	return nil, domain.ErrInvalidCredentials
}

// RotateToken bumps the caller's own version and returns a fresh token at the
// new version. Every previously issued token stops verifying at once.
func (s *EmployeeService) RotateToken(ctx context.Context, employeeID uuid.UUID) (*EmployeeAuthResult, error) {
	employee, err := s.employeeRepo.IncrementTokenVersion(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	accessToken, err := s.tokens.IssueEmployee(employee.ID, employee.TokenVersion)
	if err != nil {
		return nil, err
	}

	return &EmployeeAuthResult{Employee: employee, Token: accessToken}, nil
}
