package domain

import "errors"

// Authentication errors. All of these collapse to a single generic 401 at the
// transport boundary; the specific kind is only ever logged server-side.
var (
	ErrMissingToken      = errors.New("no bearer token provided")
	ErrInvalidToken      = errors.New("invalid token")
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrAccountDisabled   = errors.New("account is disabled")
	ErrTokenRevoked      = errors.New("token has been revoked")
)

// Domain errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrCaptureNotFound    = errors.New("capture not found")
	ErrCrossTenantAccess  = errors.New("resource belongs to a different company")
	ErrStorageUnavailable = errors.New("object storage unavailable")
)
