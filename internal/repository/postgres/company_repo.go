package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/domain"
	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *companyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).Preload("Plan").First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) GetByOwnerEmail(ctx context.Context, email string) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).Preload("Plan").First(&company, "owner_email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *planRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *planRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	var plan domain.Plan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) ListByPrice(ctx context.Context) ([]*domain.Plan, error) {
	var plans []*domain.Plan
	err := r.db.WithContext(ctx).Order("price_per_employee ASC").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
