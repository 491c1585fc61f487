package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/aggregate"
	"github.com/maheshk/workpulse/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompanyBuilder creates test companies with a builder pattern
type CompanyBuilder struct {
	companyName string
	ownerName   string
	ownerEmail  string
	password    string
	planID      *uuid.UUID
}

// NewCompanyBuilder creates a new CompanyBuilder with default values
func NewCompanyBuilder() *CompanyBuilder {
	suffix := uuid.New().String()[:8]
	return &CompanyBuilder{
		companyName: fmt.Sprintf("testco_%s", suffix),
		ownerName:   "Test Owner",
		ownerEmail:  fmt.Sprintf("owner_%s@example.com", suffix),
		password:    "testpassword123",
	}
}

func (b *CompanyBuilder) WithOwnerEmail(email string) *CompanyBuilder {
	b.ownerEmail = email
	return b
}

func (b *CompanyBuilder) WithPassword(password string) *CompanyBuilder {
	b.password = password
	return b
}

func (b *CompanyBuilder) WithPlan(planID uuid.UUID) *CompanyBuilder {
	b.planID = &planID
	return b
}

// Build creates the company in the database and returns it with the raw password
func (b *CompanyBuilder) Build(t *testing.T, db *gorm.DB) (*domain.Company, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	company := &domain.Company{
		ID:                uuid.New(),
		CompanyName:       b.companyName,
		OwnerName:         b.ownerName,
		OwnerEmail:        b.ownerEmail,
		OwnerPasswordHash: string(hashedPassword),
		PlanID:            b.planID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := db.Create(company).Error; err != nil {
		t.Fatalf("failed to create company: %v", err)
	}

	return company, b.password
}

// EmployeeBuilder creates test employees with a builder pattern
type EmployeeBuilder struct {
	company      *domain.Company
	name         string
	email        string
	password     string
	isActive     bool
	tokenVersion int
}

func NewEmployeeBuilder() *EmployeeBuilder {
	suffix := uuid.New().String()[:8]
	return &EmployeeBuilder{
		name:     fmt.Sprintf("Test Employee %s", suffix),
		email:    fmt.Sprintf("employee_%s@example.com", suffix),
		password: "testpassword123",
		isActive: true,
	}
}

func (b *EmployeeBuilder) WithCompany(company *domain.Company) *EmployeeBuilder {
	b.company = company
	return b
}

func (b *EmployeeBuilder) WithEmail(email string) *EmployeeBuilder {
	b.email = email
	return b
}

func (b *EmployeeBuilder) WithPassword(password string) *EmployeeBuilder {
	b.password = password
	return b
}

func (b *EmployeeBuilder) WithActive(active bool) *EmployeeBuilder {
	b.isActive = active
	return b
}

func (b *EmployeeBuilder) WithTokenVersion(version int) *EmployeeBuilder {
	b.tokenVersion = version
	return b
}

// Build creates the employee in the database and returns it with the raw password
func (b *EmployeeBuilder) Build(t *testing.T, db *gorm.DB) (*domain.Employee, string) {
	t.Helper()

	if b.company == nil {
		company, _ := NewCompanyBuilder().Build(t, db)
		b.company = company
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	employee := &domain.Employee{
		ID:           uuid.New(),
		CompanyID:    b.company.ID,
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		IsActive:     b.isActive,
		TokenVersion: b.tokenVersion,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}

	return employee, b.password
}

// CaptureBuilder creates test capture records directly in the database
type CaptureBuilder struct {
	employee   *domain.Employee
	capturedAt time.Time
	byteSize   *int64
	locator    string
}

func NewCaptureBuilder() *CaptureBuilder {
	return &CaptureBuilder{
		capturedAt: time.Now().UTC(),
		locator:    fmt.Sprintf("test/capture-%s.png", uuid.New().String()[:8]),
	}
}

func (b *CaptureBuilder) WithEmployee(employee *domain.Employee) *CaptureBuilder {
	b.employee = employee
	return b
}

func (b *CaptureBuilder) At(capturedAt time.Time) *CaptureBuilder {
	b.capturedAt = capturedAt
	return b
}

func (b *CaptureBuilder) WithByteSize(size int64) *CaptureBuilder {
	b.byteSize = &size
	return b
}

// Build creates the capture with derived time parts, the same way the upload
// path does.
func (b *CaptureBuilder) Build(t *testing.T, db *gorm.DB) *domain.Capture {
	t.Helper()

	if b.employee == nil {
		employee, _ := NewEmployeeBuilder().Build(t, db)
		b.employee = employee
	}

	parts := aggregate.PartsOf(b.capturedAt)
	capture := &domain.Capture{
		ID:             uuid.New(),
		CompanyID:      b.employee.CompanyID,
		EmployeeID:     b.employee.ID,
		StorageLocator: b.locator,
		ByteSize:       b.byteSize,
		CapturedAt:     b.capturedAt,
		CaptureDate:    datatypes.Date(parts.Date),
		CaptureHour:    parts.Hour,
		CaptureMinute:  parts.Minute,
		CreatedAt:      time.Now(),
	}

	if err := db.Create(capture).Error; err != nil {
		t.Fatalf("failed to create capture: %v", err)
	}

	return capture
}

// SignupResponse matches the company signup/login API data payload
type SignupResponse struct {
	Company struct {
		ID          string `json:"id"`
		CompanyName string `json:"company_name"`
		OwnerEmail  string `json:"owner_email"`
	} `json:"company"`
	Token string `json:"token"`
}

// BuildAndAuthenticate creates a company via the API and returns its id and admin token
func (b *CompanyBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (uuid.UUID, string) {
	t.Helper()

	reqBody := map[string]string{
		"company_name": b.companyName,
		"owner_name":   b.ownerName,
		"owner_email":  b.ownerEmail,
		"password":     b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/company/signup"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to sign up company: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected signup status %d: %s", resp.StatusCode, raw)
	}

	var env struct {
		Data SignupResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode signup response: %v", err)
	}

	companyID, err := uuid.Parse(env.Data.Company.ID)
	if err != nil {
		t.Fatalf("failed to parse company id: %v", err)
	}

	return companyID, env.Data.Token
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UploadScreenshot posts a multipart capture for the given employee token.
// capturedAt is sent in the captured_at form field when non-zero.
func UploadScreenshot(t *testing.T, ts *TestServer, token string, capturedAt time.Time) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("screenshot", "capture.png")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := fw.Write([]byte("fake-png-bytes")); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}

	if !capturedAt.IsZero() {
		if err := mw.WriteField("captured_at", capturedAt.Format(time.RFC3339)); err != nil {
			t.Fatalf("failed to write captured_at field: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.APIURL("/screenshots/upload"), &buf)
	if err != nil {
		t.Fatalf("failed to create upload request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed to upload screenshot: %v", err)
	}

	return resp
}
