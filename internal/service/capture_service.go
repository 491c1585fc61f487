package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/aggregate"
	"github.com/maheshk/workpulse/internal/domain"
	"github.com/maheshk/workpulse/internal/realtime"
	"github.com/maheshk/workpulse/internal/repository"
	"github.com/maheshk/workpulse/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CaptureService struct {
	captureRepo  repository.CaptureRepository
	employeeRepo repository.EmployeeRepository
	objects      storage.ObjectStore
	feed         *realtime.Hub
}

func NewCaptureService(captureRepo repository.CaptureRepository, employeeRepo repository.EmployeeRepository, objects storage.ObjectStore, feed *realtime.Hub) *CaptureService {
	return &CaptureService{
		captureRepo:  captureRepo,
		employeeRepo: employeeRepo,
		objects:      objects,
		feed:         feed,
	}
}

type UploadInput struct {
	Filename   string
	Size       int64
	CapturedAt time.Time
	Content    io.Reader
}

// Upload stores the payload and creates the capture record. The record's
// company id comes from the resolved employee identity, which keeps every
// capture's tenant equal to its employee's tenant at write time. The derived
// date/hour/minute are fixed here and never recomputed.
func (s *CaptureService) Upload(ctx context.Context, ident domain.EmployeeIdentity, input UploadInput) (*domain.Capture, error) {
	capturedAt := input.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	key := fmt.Sprintf("%s/%s/capture-%d%s",
		ident.CompanyID, ident.EmployeeID, capturedAt.UnixNano(), path.Ext(input.Filename))

	locator, err := s.objects.Put(ctx, key, input.Content)
	if err != nil {
		return nil, err
	}

	parts := aggregate.PartsOf(capturedAt)
	capture := &domain.Capture{
		CompanyID:      ident.CompanyID,
		EmployeeID:     ident.EmployeeID,
		StorageLocator: locator,
		CapturedAt:     capturedAt,
		CaptureDate:    datatypes.Date(parts.Date),
		CaptureHour:    parts.Hour,
		CaptureMinute:  parts.Minute,
	}
	if input.Size > 0 {
		size := input.Size
		capture.ByteSize = &size
	}

	if err := s.captureRepo.Create(ctx, capture); err != nil {
		// Best effort: don't leave an orphaned object behind a failed insert.
		if delErr := s.objects.Delete(ctx, locator); delErr != nil {
			log.Printf("ERROR [service.Capture] failed to remove object after insert failure: %v", delErr)
		}
		return nil, err
	}

	if s.feed != nil {
		s.feed.Broadcast(realtime.Event{
			Type:      realtime.EventCaptureUploaded,
			CompanyID: ident.CompanyID,
			Payload:   capture,
		})
	}

	return capture, nil
}

type DaySummary struct {
	EmployeeID       uuid.UUID             `json:"employee_id"`
	Date             string                `json:"date"`
	TotalScreenshots int                   `json:"total_screenshots"`
	GroupedByHour    []aggregate.HourGroup `json:"grouped_by_hour"`
}

// Dashboard returns the bucketed day view for one employee of the admin's
// company. An employee id outside the tenant is a hard rejection, never a
// silent empty result.
func (s *CaptureService) Dashboard(ctx context.Context, companyID, employeeID uuid.UUID, date string) (*DaySummary, error) {
	if err := s.requireEmployeeInCompany(ctx, companyID, employeeID); err != nil {
		return nil, err
	}

	captures, err := s.captureRepo.ListForEmployeeOnDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	return &DaySummary{
		EmployeeID:       employeeID,
		Date:             date,
		TotalScreenshots: len(captures),
		GroupedByHour:    aggregate.GroupDay(captures),
	}, nil
}

func (s *CaptureService) Summary(ctx context.Context, companyID, employeeID uuid.UUID, startDate, endDate string) ([]domain.CaptureDateSummary, error) {
	if err := s.requireEmployeeInCompany(ctx, companyID, employeeID); err != nil {
		return nil, err
	}

	return s.captureRepo.CountsByDate(ctx, employeeID, startDate, endDate)
}

func (s *CaptureService) Get(ctx context.Context, companyID, captureID uuid.UUID) (*domain.Capture, error) {
	capture, err := s.captureRepo.GetByID(ctx, captureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCaptureNotFound
		}
		return nil, err
	}

	if capture.CompanyID != companyID {
		return nil, domain.ErrCrossTenantAccess
	}

	return capture, nil
}

// Delete removes the record and, best effort, the stored object. A failed
// object delete is logged and the record delete proceeds; dangling blobs are
// an accepted trade-off over carrying a reconciliation queue.
func (s *CaptureService) Delete(ctx context.Context, companyID, captureID uuid.UUID) error {
	capture, err := s.Get(ctx, companyID, captureID)
	if err != nil {
		return err
	}

	if err := s.objects.Delete(ctx, capture.StorageLocator); err != nil {
		log.Printf("ERROR [service.Capture] failed to delete object %s: %v", capture.StorageLocator, err)
	}

	return s.captureRepo.Delete(ctx, capture.ID)
}

func (s *CaptureService) requireEmployeeInCompany(ctx context.Context, companyID, employeeID uuid.UUID) error {
	if _, err := s.employeeRepo.GetByIDForCompany(ctx, companyID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCrossTenantAccess
		}
		return err
	}
	return nil
}
