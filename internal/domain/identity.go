package domain

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Identity is the resolved principal attached to a request by the session
// guard. It is the only source of tenant id for downstream operations.
type Identity interface {
	Role() Role
	TenantID() uuid.UUID
}

type AdminIdentity struct {
	CompanyID uuid.UUID
	OwnerID   uuid.UUID
	Company   *Company
}

func (AdminIdentity) Role() Role            { return RoleAdmin }
func (a AdminIdentity) TenantID() uuid.UUID { return a.CompanyID }

type EmployeeIdentity struct {
	CompanyID  uuid.UUID
	EmployeeID uuid.UUID
	Employee   *Employee
}

func (EmployeeIdentity) Role() Role            { return RoleEmployee }
func (e EmployeeIdentity) TenantID() uuid.UUID { return e.CompanyID }
