package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/maheshk/workpulse/internal/domain"
	"github.com/maheshk/workpulse/internal/repository"
	"github.com/maheshk/workpulse/internal/token"
	"gorm.io/gorm"
)

type contextKey string

const (
	adminIdentityKey    contextKey = "adminIdentity"
	employeeIdentityKey contextKey = "employeeIdentity"
)

// AuthAdmin resolves a company-owner bearer token into an AdminIdentity.
// Every failure kind (missing token, bad signature, expired, unknown company)
// produces the same 401 response; only the server log says which check failed.
func AuthAdmin(tokens *token.Service, companies repository.CompanyRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, err := resolveAdminHeader(r.Context(), tokens, companies, r.Header.Get("Authorization"))
			if err != nil {
				log.Printf("ERROR [middleware.AuthAdmin] %v", err)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), adminIdentityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthEmployee resolves an employee bearer token into an EmployeeIdentity,
// enforcing the activation flag and the revocation counter against the
// freshly loaded record.
func AuthEmployee(tokens *token.Service, employees repository.EmployeeRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := token.ExtractBearer(r.Header.Get("Authorization"))
			if err != nil {
				log.Printf("ERROR [middleware.AuthEmployee] %v", err)
				writeUnauthorized(w)
				return
			}

			ident, err := ResolveEmployee(r.Context(), tokens, employees, raw)
			if err != nil {
				log.Printf("ERROR [middleware.AuthEmployee] %v", err)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), employeeIdentityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveAdminHeader(ctx context.Context, tokens *token.Service, companies repository.CompanyRepository, authHeader string) (domain.AdminIdentity, error) {
	raw, err := token.ExtractBearer(authHeader)
	if err != nil {
		return domain.AdminIdentity{}, err
	}
	return ResolveAdmin(ctx, tokens, companies, raw)
}

// ResolveAdmin runs the admin session-guard chain on a raw token: verify
// claims, then load the company. Shared with the websocket feed endpoint,
// which carries its token in a query parameter.
func ResolveAdmin(ctx context.Context, tokens *token.Service, companies repository.CompanyRepository, raw string) (domain.AdminIdentity, error) {
	claims, err := tokens.VerifyAdmin(raw)
	if err != nil {
		return domain.AdminIdentity{}, err
	}

	company, err := companies.GetByID(ctx, claims.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AdminIdentity{}, domain.ErrPrincipalNotFound
		}
		return domain.AdminIdentity{}, err
	}

	return domain.AdminIdentity{
		CompanyID: company.ID,
		OwnerID:   claims.OwnerID,
		Company:   company,
	}, nil
}

// ResolveEmployee runs the employee session-guard chain: verify claims, load
// the employee, reject disabled accounts, then compare the version claim with
// the stored revocation counter. The load is a fresh read every time; a bump
// committed before this check is always observed.
func ResolveEmployee(ctx context.Context, tokens *token.Service, employees repository.EmployeeRepository, raw string) (domain.EmployeeIdentity, error) {
	claims, err := tokens.VerifyEmployee(raw)
	if err != nil {
		return domain.EmployeeIdentity{}, err
	}

	employee, err := employees.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.EmployeeIdentity{}, domain.ErrPrincipalNotFound
		}
		return domain.EmployeeIdentity{}, err
	}

	if !employee.IsActive {
		return domain.EmployeeIdentity{}, domain.ErrAccountDisabled
	}
	if claims.Version != employee.TokenVersion {
		return domain.EmployeeIdentity{}, domain.ErrTokenRevoked
	}

	return domain.EmployeeIdentity{
		CompanyID:  employee.CompanyID,
		EmployeeID: employee.ID,
		Employee:   employee,
	}, nil
}

func GetAdmin(ctx context.Context) (domain.AdminIdentity, bool) {
	ident, ok := ctx.Value(adminIdentityKey).(domain.AdminIdentity)
	return ident, ok
}

func GetEmployee(ctx context.Context) (domain.EmployeeIdentity, bool) {
	ident, ok := ctx.Value(employeeIdentityKey).(domain.EmployeeIdentity)
	return ident, ok
}

// writeUnauthorized is the single undifferentiated rejection for all
// authentication failures.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "Unauthorized: Invalid or expired token",
	})
}
