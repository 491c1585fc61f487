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

type CompanyService struct {
	companyRepo repository.CompanyRepository
	planRepo    repository.PlanRepository
	tokens      *token.Service
}

func NewCompanyService(companyRepo repository.CompanyRepository, planRepo repository.PlanRepository, tokens *token.Service) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		planRepo:    planRepo,
		tokens:      tokens,
	}
}

type SignupInput struct {
	CompanyName string
	OwnerName   string
	OwnerEmail  string
	Password    string
	PlanID      *uuid.UUID
}

type CompanyAuthResult struct {
	Company *domain.Company
	Token   string
}

func (s *CompanyService) Plans(ctx context.Context) ([]*domain.Plan, error) {
	return s.planRepo.ListByPrice(ctx)
}

func (s *CompanyService) Signup(ctx context.Context, input SignupInput) (*CompanyAuthResult, error) {
	existing, err := s.companyRepo.GetByOwnerEmail(ctx, input.OwnerEmail)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var plan *domain.Plan
	if input.PlanID != nil {
		plan, err = s.planRepo.GetByID(ctx, *input.PlanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrPlanNotFound
			}
			return nil, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	company := &domain.Company{
		CompanyName:       input.CompanyName,
		OwnerName:         input.OwnerName,
		OwnerEmail:        input.OwnerEmail,
		OwnerPasswordHash: string(hashedPassword),
	}
	if plan != nil {
		company.PlanID = &plan.ID
		company.Plan = plan
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		// A concurrent signup can slip past the lookup; the unique index is
		// the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	// Owner accounts are not separate records; the company id doubles as the
	// owner id in the admin claims.
	accessToken, err := s.tokens.IssueAdmin(company.ID, company.ID)
	if err != nil {
		return nil, err
	}

	return &CompanyAuthResult{Company: company, Token: accessToken}, nil
}

func (s *CompanyService) Login(ctx context.Context, email, password string) (*CompanyAuthResult, error) {
	company, err := s.companyRepo.GetByOwnerEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(company.OwnerPasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAdmin(company.ID, company.ID)
	if err != nil {
		return nil, err
	}

	return &CompanyAuthResult{Company: company, Token: accessToken}, nil
}
