package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Capture is one timestamped activity record. CompanyID is denormalized from
// the owning employee and must always match it; it is set from the resolved
// identity at write time, never from client input. CaptureDate/Hour/Minute are
// derived from CapturedAt when the record is created and never recomputed.
type Capture struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CompanyID      uuid.UUID      `json:"companyId" gorm:"type:uuid;not null;index:idx_captures_company_date,priority:1"`
	EmployeeID     uuid.UUID      `json:"employeeId" gorm:"type:uuid;not null;index:idx_captures_employee_date,priority:1"`
	StorageLocator string         `json:"filePath" gorm:"not null"`
	ByteSize       *int64         `json:"fileSize"`
	CapturedAt     time.Time      `json:"uploadedAt" gorm:"not null;index"`
	CaptureDate    datatypes.Date `json:"-" gorm:"index:idx_captures_employee_date,priority:2;index:idx_captures_company_date,priority:2"`
	CaptureHour    int            `json:"-" gorm:"not null"`
	CaptureMinute  int            `json:"-" gorm:"not null"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// CaptureDateSummary is one row of the period summary: captures per calendar
// date plus the number of distinct hours that saw at least one capture.
type CaptureDateSummary struct {
	Date            string `json:"date"`
	ScreenshotCount int64  `json:"screenshot_count"`
	ActiveHours     int64  `json:"active_hours"`
}
