package domain

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CompanyName       string     `json:"companyName" gorm:"not null"`
	OwnerName         string     `json:"ownerName" gorm:"not null"`
	OwnerEmail        string     `json:"ownerEmail" gorm:"uniqueIndex;not null"`
	OwnerPasswordHash string     `json:"-" gorm:"not null"`
	PlanID            *uuid.UUID `json:"planId" gorm:"type:uuid"`
	Plan              *Plan      `json:"plan,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type Plan struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name             string    `json:"name" gorm:"uniqueIndex;not null"`
	PricePerEmployee float64   `json:"pricePerEmployee" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}
