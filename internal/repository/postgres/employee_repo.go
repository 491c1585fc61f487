package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/domain"
	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *employeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) GetByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ? AND company_id = ?", id, companyID).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Employee, error) {
	var employees []*domain.Employee
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) ExistsByEmail(ctx context.Context, companyID uuid.UUID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).
		Where("company_id = ? AND email = ?", companyID, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *employeeRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]*domain.Employee, error) {
	var employees []*domain.Employee
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) SearchByName(ctx context.Context, companyID uuid.UUID, query string) ([]*domain.Employee, error) {
	var employees []*domain.Employee
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND name ILIKE ?", companyID, "%"+query+"%").
		Order("name ASC").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepository) IncrementTokenVersion(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	result := r.db.WithContext(ctx).Model(&domain.Employee{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}
