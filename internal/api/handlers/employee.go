package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/api/middleware"
	"github.com/maheshk/workpulse/internal/domain"
	"github.com/maheshk/workpulse/internal/service"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

type AddEmployeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EmployeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CompanyID string    `json:"company_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *EmployeeHandler) Add(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetAdmin(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	var req AddEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if len(strings.TrimSpace(req.Name)) < 2 {
		respondError(w, http.StatusBadRequest, "Name must be at least 2 characters")
		return
	}
	if !looksLikeEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if len(req.Password) < 6 {
		respondError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	result, err := h.employeeService.Add(r.Context(), ident.CompanyID, service.AddEmployeeInput{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			respondError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "Error adding employee")
		return
	}

	respondCreated(w, "Employee added successfully", map[string]any{
		"employee": employeeResponse(result.Employee),
		"token":    result.Token,
	})
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetAdmin(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	employees, err := h.employeeService.List(r.Context(), ident.CompanyID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching employees")
		return
	}

	respondOK(w, "", employeeResponses(employees))
}

func (h *EmployeeHandler) Search(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetAdmin(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	employees, err := h.employeeService.Search(r.Context(), ident.CompanyID, query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error searching employees")
		return
	}

	respondOK(w, "", employeeResponses(employees))
}

func (h *EmployeeHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetAdmin(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	employee, err := h.employeeService.ToggleStatus(r.Context(), ident.CompanyID, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			respondError(w, http.StatusNotFound, "Employee not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Error updating employee status")
		return
	}

	respondOK(w, "Employee status updated", employeeResponse(employee))
}

func (h *EmployeeHandler) RevokeTokens(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetAdmin(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	employee, err := h.employeeService.RevokeTokens(r.Context(), ident.CompanyID, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			respondError(w, http.StatusNotFound, "Employee not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Error revoking tokens")
		return
	}

	respondOK(w, "All employee tokens revoked", employeeResponse(employee))
}

func (h *EmployeeHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := h.employeeService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	respondOK(w, "Login successful", map[string]any{
		"employee": employeeResponse(result.Employee),
		"token":    result.Token,
	})
}

func (h *EmployeeHandler) RotateToken(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetEmployee(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	result, err := h.employeeService.RotateToken(r.Context(), ident.EmployeeID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error rotating token")
		return
	}

	respondOK(w, "Token rotated successfully", map[string]any{
		"token": result.Token,
	})
}

func employeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID.String(),
		Name:      e.Name,
		Email:     e.Email,
		CompanyID: e.CompanyID.String(),
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}
}

func employeeResponses(employees []*domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employeeResponse(e))
	}
	return out
}
