package token

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/config"
	"github.com/maheshk/workpulse/internal/domain"
)

// Service issues and verifies bearer tokens for the two principal domains.
// Admin and employee tokens are signed with separate secrets and are never
// cross-verifiable. Verification is purely cryptographic/structural; the
// storage-backed checks (revocation, activation) belong to the session guard.
type Service struct {
	adminSecret    []byte
	employeeSecret []byte
	adminTTL       time.Duration
	now            func() time.Time
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		adminSecret:    []byte(cfg.JWTAdminSecret),
		employeeSecret: []byte(cfg.JWTEmployeeSecret),
		adminTTL:       cfg.AdminTokenTTL,
		now:            time.Now,
	}
}

// WithClock overrides the time source. Used by tests to simulate expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type AdminClaims struct {
	CompanyID uuid.UUID
	OwnerID   uuid.UUID
}

type EmployeeClaims struct {
	EmployeeID uuid.UUID
	Version    int
}

// IssueAdmin generates a company-owner token with a fixed expiry.
func (s *Service) IssueAdmin(companyID, ownerID uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"company_id": companyID.String(),
		"owner_id":   ownerID.String(),
		"type":       string(domain.RoleAdmin),
		"iat":        now.Unix(),
		"exp":        now.Add(s.adminTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.adminSecret)
}

// IssueEmployee generates an employee token carrying the version it was minted
// at. There is no expiry; validity is governed entirely by the version claim
// matching the employee's current token version.
func (s *Service) IssueEmployee(employeeID uuid.UUID, version int) (string, error) {
	claims := jwt.MapClaims{
		"id":      employeeID.String(),
		"type":    string(domain.RoleEmployee),
		"version": version,
		"iat":     s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.employeeSecret)
}

func (s *Service) VerifyAdmin(tokenString string) (*AdminClaims, error) {
	claims, err := s.parse(tokenString, s.adminSecret, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if _, ok := claims["exp"]; !ok {
		return nil, fmt.Errorf("%w: admin token has no expiry", domain.ErrInvalidToken)
	}

	companyID, err := claimUUID(claims, "company_id")
	if err != nil {
		return nil, err
	}
	ownerID, err := claimUUID(claims, "owner_id")
	if err != nil {
		return nil, err
	}

	return &AdminClaims{CompanyID: companyID, OwnerID: ownerID}, nil
}

func (s *Service) VerifyEmployee(tokenString string) (*EmployeeClaims, error) {
	claims, err := s.parse(tokenString, s.employeeSecret, domain.RoleEmployee)
	if err != nil {
		return nil, err
	}

	employeeID, err := claimUUID(claims, "id")
	if err != nil {
		return nil, err
	}

	version, ok := claims["version"].(float64)
	if !ok || version < 0 || version != math.Trunc(version) {
		return nil, fmt.Errorf("%w: missing or malformed version claim", domain.ErrInvalidToken)
	}

	return &EmployeeClaims{EmployeeID: employeeID, Version: int(version)}, nil
}

func (s *Service) parse(tokenString string, secret []byte, want domain.Role) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	if typ, _ := claims["type"].(string); typ != string(want) {
		return nil, fmt.Errorf("%w: wrong token type", domain.ErrInvalidToken)
	}

	return claims, nil
}

func claimUUID(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, ok := claims[key].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: missing %s claim", domain.ErrInvalidToken, key)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed %s claim", domain.ErrInvalidToken, key)
	}
	return id, nil
}

// ExtractBearer pulls the token out of an Authorization header value. A
// missing or malformed header is a distinct failure from a bad token.
func ExtractBearer(authHeader string) (string, error) {
	if authHeader == "" {
		return "", domain.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", domain.ErrMissingToken
	}

	return parts[1], nil
}
