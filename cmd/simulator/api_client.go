package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Company struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	OwnerEmail  string `json:"owner_email"`
}

type CompanyAuth struct {
	Company Company `json:"company"`
	Token   string  `json:"token"`
}

type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type EmployeeAuth struct {
	Employee Employee `json:"employee"`
	Token    string   `json:"token"`
}

// SignupCompany registers a fresh company account
func (c *APIClient) SignupCompany(baseName string) (*CompanyAuth, error) {
	suffix := time.Now().UnixNano() % 100000
	body := map[string]string{
		"company_name": fmt.Sprintf("%s_%d", baseName, suffix),
		"owner_name":   "Simulator Owner",
		"owner_email":  fmt.Sprintf("owner_%d@simulator.test", suffix),
		"password":     "testpassword123",
	}

	resp, err := c.post("/company/signup", body, "")
	if err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	defer resp.Body.Close()

	var auth CompanyAuth
	if err := decodeData(resp, http.StatusCreated, &auth); err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}
	return &auth, nil
}

// AddEmployee creates an employee under the admin's company
func (c *APIClient) AddEmployee(adminToken, name string, index int) (*EmployeeAuth, error) {
	body := map[string]string{
		"name":     name,
		"email":    fmt.Sprintf("employee_%d_%d@simulator.test", index, time.Now().UnixNano()%100000),
		"password": "testpassword123",
	}

	resp, err := c.post("/employee/add", body, adminToken)
	if err != nil {
		return nil, fmt.Errorf("add employee request failed: %w", err)
	}
	defer resp.Body.Close()

	var auth EmployeeAuth
	if err := decodeData(resp, http.StatusCreated, &auth); err != nil {
		return nil, fmt.Errorf("add employee failed: %w", err)
	}
	return &auth, nil
}

// UploadScreenshot posts a fake capture for the employee at the given time
func (c *APIClient) UploadScreenshot(employeeToken string, capturedAt time.Time) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("screenshot", "capture.png")
	if err != nil {
		return err
	}
	if _, err := fw.Write(fakePNG()); err != nil {
		return err
	}
	if err := mw.WriteField("captured_at", capturedAt.Format(time.RFC3339)); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest("POST", c.baseURL+"/screenshots/upload", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+employeeToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed (status %d): %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// GetDashboard fetches the bucketed day view for an employee
func (c *APIClient) GetDashboard(adminToken, employeeID, date string) (json.RawMessage, error) {
	resp, err := c.get("/screenshots/dashboard?employee_id="+employeeID+"&date="+date, adminToken)
	if err != nil {
		return nil, fmt.Errorf("dashboard request failed: %w", err)
	}
	defer resp.Body.Close()

	var data json.RawMessage
	if err := decodeData(resp, http.StatusOK, &data); err != nil {
		return nil, fmt.Errorf("dashboard failed: %w", err)
	}
	return data, nil
}

// GetSummary fetches the per-date counts for an employee
func (c *APIClient) GetSummary(adminToken, employeeID string) (json.RawMessage, error) {
	resp, err := c.get("/screenshots/summary/"+employeeID, adminToken)
	if err != nil {
		return nil, fmt.Errorf("summary request failed: %w", err)
	}
	defer resp.Body.Close()

	var data json.RawMessage
	if err := decodeData(resp, http.StatusOK, &data); err != nil {
		return nil, fmt.Errorf("summary failed: %w", err)
	}
	return data, nil
}

// fakePNG returns a minimal single-pixel PNG
func fakePNG() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
		0x89, 0x00, 0x00, 0x00, 0x0A, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44, 0xAE,
		0x42, 0x60, 0x82,
	}
}

// HTTP helpers

func decodeData(resp *http.Response, wantStatus int, v interface{}) error {
	if resp.StatusCode != wantStatus {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if v != nil {
		if err := json.Unmarshal(env.Data, v); err != nil {
			return fmt.Errorf("failed to decode data: %w", err)
		}
	}
	return nil
}

func (c *APIClient) get(path, token string) (*http.Response, error) {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

func (c *APIClient) post(path string, body interface{}, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
