package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/domain"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	GetByOwnerEmail(ctx context.Context, email string) (*domain.Company, error)
}

type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
	ListByPrice(ctx context.Context) ([]*domain.Plan, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	// GetByIDForCompany resolves an employee only if it belongs to the given
	// company; a hit in another tenant looks identical to a miss.
	GetByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*domain.Employee, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Employee, error)
	ExistsByEmail(ctx context.Context, companyID uuid.UUID, email string) (bool, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.Employee, error)
	SearchByName(ctx context.Context, companyID uuid.UUID, query string) ([]*domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) error
	// IncrementTokenVersion bumps the revocation counter in a single UPDATE so
	// it only ever moves forward, and returns the employee at the new version.
	IncrementTokenVersion(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

type CaptureRepository interface {
	Create(ctx context.Context, capture *domain.Capture) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Capture, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListForEmployeeOnDate returns one employee's captures for a calendar
	// date (YYYY-MM-DD), ordered by capture time ascending.
	ListForEmployeeOnDate(ctx context.Context, employeeID uuid.UUID, date string) ([]*domain.Capture, error)
	// CountsByDate returns per-date capture counts and distinct active hours,
	// ordered by date descending. Empty start/end means no range filter.
	CountsByDate(ctx context.Context, employeeID uuid.UUID, startDate, endDate string) ([]domain.CaptureDateSummary, error)
}

type Repositories struct {
	Company  CompanyRepository
	Plan     PlanRepository
	Employee EmployeeRepository
	Capture  CaptureRepository
}
