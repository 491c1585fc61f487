package handlers

import (
	"errors"
	"net/http"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/api/middleware"
	"github.com/maheshk/workpulse/internal/domain"
	"github.com/maheshk/workpulse/internal/service"
)

var dateRx = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
}

type CaptureHandler struct {
	captureService *service.CaptureService
	maxUploadBytes int64
}

func NewCaptureHandler(captureService *service.CaptureService, maxUploadBytes int64) *CaptureHandler {
	return &CaptureHandler{
		captureService: captureService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload receives a multipart screenshot from an employee agent. An optional
// captured_at field (RFC3339) supports agents that buffer captures offline;
// it defaults to the server clock.
func (h *CaptureHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetEmployee(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+4096)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "File too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("screenshot")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	// ParseMultipartForm's argument is only a memory threshold; the cap has
	// to be enforced against the actual part size.
	if header.Size > h.maxUploadBytes {
		respondError(w, http.StatusBadRequest, "File too large or malformed upload")
		return
	}

	ext := strings.ToLower(path.Ext(header.Filename))
	if !allowedExtensions[ext] {
		respondError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}

	var capturedAt time.Time
	if raw := r.FormValue("captured_at"); raw != "" {
		capturedAt, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "captured_at must be RFC3339")
			return
		}
	}

	capture, err := h.captureService.Upload(r.Context(), ident, service.UploadInput{
		Filename:   header.Filename,
		Size:       header.Size,
		CapturedAt: capturedAt,
		Content:    file,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error uploading screenshot")
		return
	}

	respondCreated(w, "Screenshot uploaded successfully", map[string]any{
		"id":          capture.ID.String(),
		"uploaded_at": capture.CapturedAt,
		"file_size":   capture.ByteSize,
		"file_path":   capture.StorageLocator,
	})
}

func (h *CaptureHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetAdmin(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	employeeID, err := uuid.Parse(r.URL.Query().Get("employee_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "employee_id and date are required")
		return
	}

	date := r.URL.Query().Get("date")
	if !dateRx.MatchString(date) {
		respondError(w, http.StatusBadRequest, "employee_id and date are required")
		return
	}

	summary, err := h.captureService.Dashboard(r.Context(), ident.CompanyID, employeeID, date)
	if err != nil {
		if errors.Is(err, domain.ErrCrossTenantAccess) {
			respondError(w, http.StatusForbidden, "Unauthorized access to employee data")
			return
		}
		respondError(w, http.StatusInternalServerError, "Error fetching dashboard data")
		return
	}

	respondOK(w, "", summary)
}

func (h *CaptureHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetAdmin(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	employeeID, err := uuid.Parse(chi.URLParam(r, "employeeID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid employee id")
		return
	}

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if (startDate != "" || endDate != "") && (!dateRx.MatchString(startDate) || !dateRx.MatchString(endDate)) {
		respondError(w, http.StatusBadRequest, "start_date and end_date must be YYYY-MM-DD")
		return
	}

	summary, err := h.captureService.Summary(r.Context(), ident.CompanyID, employeeID, startDate, endDate)
	if err != nil {
		if errors.Is(err, domain.ErrCrossTenantAccess) {
			respondError(w, http.StatusForbidden, "Unauthorized access to employee data")
			return
		}
		respondError(w, http.StatusInternalServerError, "Error fetching summary data")
		return
	}

	respondOK(w, "", summary)
}

func (h *CaptureHandler) Get(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetAdmin(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	captureID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid screenshot id")
		return
	}

	capture, err := h.captureService.Get(r.Context(), ident.CompanyID, captureID)
	if err != nil {
		h.respondCaptureError(w, err)
		return
	}

	respondOK(w, "", capture)
}

func (h *CaptureHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetAdmin(r.Context())
	if !ok {
		respondUnauthorized(w)
		return
	}

	captureID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid screenshot id")
		return
	}

	if err := h.captureService.Delete(r.Context(), ident.CompanyID, captureID); err != nil {
		h.respondCaptureError(w, err)
		return
	}

	respondOK(w, "Screenshot deleted successfully", nil)
}

func (h *CaptureHandler) respondCaptureError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCaptureNotFound):
		respondError(w, http.StatusNotFound, "Screenshot not found")
	case errors.Is(err, domain.ErrCrossTenantAccess):
		respondError(w, http.StatusForbidden, "Unauthorized access")
	default:
		respondError(w, http.StatusInternalServerError, "Error processing screenshot")
	}
}
