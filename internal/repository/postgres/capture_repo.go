package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/domain"
	"gorm.io/gorm"
)

type captureRepository struct {
	db *gorm.DB
}

func NewCaptureRepository(db *gorm.DB) *captureRepository {
	return &captureRepository{db: db}
}

func (r *captureRepository) Create(ctx context.Context, capture *domain.Capture) error {
	return r.db.WithContext(ctx).Create(capture).Error
}

func (r *captureRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Capture, error) {
	var capture domain.Capture
	err := r.db.WithContext(ctx).First(&capture, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &capture, nil
}

func (r *captureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Capture{}, "id = ?", id).Error
}

func (r *captureRepository) ListForEmployeeOnDate(ctx context.Context, employeeID uuid.UUID, date string) ([]*domain.Capture, error) {
	var captures []*domain.Capture
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND capture_date = ?", employeeID, date).
		Order("captured_at ASC").
		Find(&captures).Error
	if err != nil {
		return nil, err
	}
	return captures, nil
}

func (r *captureRepository) CountsByDate(ctx context.Context, employeeID uuid.UUID, startDate, endDate string) ([]domain.CaptureDateSummary, error) {
	query := r.db.WithContext(ctx).Model(&domain.Capture{}).
		Select("to_char(capture_date, 'YYYY-MM-DD') AS date, COUNT(*) AS screenshot_count, COUNT(DISTINCT capture_hour) AS active_hours").
		Where("employee_id = ?", employeeID).
		Group("capture_date").
		Order("capture_date DESC")

	if startDate != "" && endDate != "" {
		query = query.Where("capture_date BETWEEN ? AND ?", startDate, endDate)
	}

	var summaries []domain.CaptureDateSummary
	if err := query.Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}
