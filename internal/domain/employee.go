package domain

import (
	"time"

	"github.com/google/uuid"
)

// Employee belongs to exactly one company. Email is unique within a company,
// not globally. TokenVersion only ever increases; bumping it invalidates every
// previously issued employee token at once.
type Employee struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `json:"companyId" gorm:"type:uuid;not null;uniqueIndex:idx_employees_company_email"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex:idx_employees_company_email"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsActive     bool      `json:"isActive" gorm:"not null;default:true"`
	TokenVersion int       `json:"-" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
