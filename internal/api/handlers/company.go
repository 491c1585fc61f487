package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/domain"
	"github.com/maheshk/workpulse/internal/service"
)

type CompanyHandler struct {
	companyService *service.CompanyService
}

func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

type SignupRequest struct {
	CompanyName string  `json:"company_name"`
	OwnerName   string  `json:"owner_name"`
	OwnerEmail  string  `json:"owner_email"`
	Password    string  `json:"password"`
	PlanID      *string `json:"plan_id"`
}

type CompanyResponse struct {
	ID          string  `json:"id"`
	CompanyName string  `json:"company_name"`
	OwnerName   string  `json:"owner_name"`
	OwnerEmail  string  `json:"owner_email"`
	PlanID      *string `json:"plan_id"`
	PlanName    *string `json:"plan_name,omitempty"`
}

func (h *CompanyHandler) Plans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.companyService.Plans(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching plans")
		return
	}

	respondOK(w, "", plans)
}

func (h *CompanyHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.OwnerEmail = strings.ToLower(strings.TrimSpace(req.OwnerEmail))
	if msg := validateSignup(req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	input := service.SignupInput{
		CompanyName: strings.TrimSpace(req.CompanyName),
		OwnerName:   strings.TrimSpace(req.OwnerName),
		OwnerEmail:  req.OwnerEmail,
		Password:    req.Password,
	}
	if req.PlanID != nil {
		planID, err := uuid.Parse(*req.PlanID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid plan selected")
			return
		}
		input.PlanID = &planID
	}

	result, err := h.companyService.Signup(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			respondError(w, http.StatusBadRequest, "Email already registered")
		case errors.Is(err, domain.ErrPlanNotFound):
			respondError(w, http.StatusBadRequest, "Invalid plan selected")
		default:
			respondError(w, http.StatusInternalServerError, "Error creating company account")
		}
		return
	}

	respondCreated(w, "Company registered successfully", map[string]any{
		"company": companyResponse(result.Company),
		"token":   result.Token,
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *CompanyHandler) Login(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.companyService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	respondOK(w, "Login successful", map[string]any{
		"company": companyResponse(result.Company),
		"token":   result.Token,
	})
}

func validateSignup(req SignupRequest) string {
	if len(strings.TrimSpace(req.CompanyName)) < 2 {
		return "Company name must be at least 2 characters"
	}
	if len(strings.TrimSpace(req.OwnerName)) < 2 {
		return "Owner name must be at least 2 characters"
	}
	if !looksLikeEmail(req.OwnerEmail) {
		return "A valid email is required"
	}
	if len(req.Password) < 6 {
		return "Password must be at least 6 characters"
	}
	return ""
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	return at > 0 && strings.Contains(s[at:], ".") && !strings.ContainsAny(s, " \t")
}

func companyResponse(c *domain.Company) CompanyResponse {
	resp := CompanyResponse{
		ID:          c.ID.String(),
		CompanyName: c.CompanyName,
		OwnerName:   c.OwnerName,
		OwnerEmail:  c.OwnerEmail,
	}
	if c.PlanID != nil {
		id := c.PlanID.String()
		resp.PlanID = &id
	}
	if c.Plan != nil {
		resp.PlanName = &c.Plan.Name
	}
	return resp
}
