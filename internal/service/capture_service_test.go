package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/domain"
	"github.com/maheshk/workpulse/internal/repository/postgres"
	"github.com/maheshk/workpulse/internal/service"
	"github.com/maheshk/workpulse/internal/storage"
	"github.com/maheshk/workpulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCaptureService(t *testing.T) (*service.CaptureService, *testutil.TestDB, *storage.MemoryStore) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	objects := storage.NewMemoryStore()
	return service.NewCaptureService(repos.Capture, repos.Employee, objects, nil), testDB, objects
}

func identityFor(employee *domain.Employee) domain.EmployeeIdentity {
	return domain.EmployeeIdentity{
		CompanyID:  employee.CompanyID,
		EmployeeID: employee.ID,
		Employee:   employee,
	}
}

func TestCaptureService_Upload(t *testing.T) {
	svc, testDB, objects := newCaptureService(t)
	ctx := context.Background()

	employee, _ := testutil.NewEmployeeBuilder().Build(t, testDB.DB)
	capturedAt, err := time.Parse(time.RFC3339, "2024-03-15T09:02:30Z")
	require.NoError(t, err)

	capture, err := svc.Upload(ctx, identityFor(employee), service.UploadInput{
		Filename:   "shot.png",
		Size:       14,
		CapturedAt: capturedAt,
		Content:    strings.NewReader("fake-png-bytes"),
	})
	require.NoError(t, err)

	// Tenant comes from the identity and the time parts are fixed at write time
	assert.Equal(t, employee.CompanyID, capture.CompanyID)
	assert.Equal(t, employee.ID, capture.EmployeeID)
	assert.Equal(t, 9, capture.CaptureHour)
	assert.Equal(t, 2, capture.CaptureMinute)
	assert.Equal(t, "2024-03-15", time.Time(capture.CaptureDate).Format("2006-01-02"))
	require.NotNil(t, capture.ByteSize)
	assert.Equal(t, int64(14), *capture.ByteSize)

	stored, ok := objects.Get(capture.StorageLocator)
	require.True(t, ok)
	assert.Equal(t, []byte("fake-png-bytes"), stored)
}

func TestCaptureService_Dashboard(t *testing.T) {
	svc, testDB, _ := newCaptureService(t)
	ctx := context.Background()

	company, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	intruder, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	employee, _ := testutil.NewEmployeeBuilder().WithCompany(company).Build(t, testDB.DB)

	for _, clock := range []string{
		"2024-03-15T09:02:00Z",
		"2024-03-15T09:07:00Z",
		"2024-03-15T10:59:00Z",
		"2024-03-14T08:00:00Z", // previous day, must not appear
	} {
		ts, err := time.Parse(time.RFC3339, clock)
		require.NoError(t, err)
		testutil.NewCaptureBuilder().WithEmployee(employee).At(ts).Build(t, testDB.DB)
	}

	t.Run("buckets one day", func(t *testing.T) {
		summary, err := svc.Dashboard(ctx, company.ID, employee.ID, "2024-03-15")
		require.NoError(t, err)

		assert.Equal(t, 3, summary.TotalScreenshots)
		require.Len(t, summary.GroupedByHour, 2)
		assert.Equal(t, 9, summary.GroupedByHour[0].Hour)
		assert.Len(t, summary.GroupedByHour[0].Intervals5Min, 2)
		assert.Len(t, summary.GroupedByHour[0].Intervals10Min, 1)
		assert.Equal(t, 10, summary.GroupedByHour[1].Hour)
	})

	t.Run("empty day", func(t *testing.T) {
		summary, err := svc.Dashboard(ctx, company.ID, employee.ID, "2024-03-16")
		require.NoError(t, err)
		assert.Equal(t, 0, summary.TotalScreenshots)
		assert.Empty(t, summary.GroupedByHour)
	})

	t.Run("cross-tenant employee id is rejected", func(t *testing.T) {
		_, err := svc.Dashboard(ctx, intruder.ID, employee.ID, "2024-03-15")
		assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
	})
}

func TestCaptureService_Summary(t *testing.T) {
	svc, testDB, _ := newCaptureService(t)
	ctx := context.Background()

	company, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	intruder, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	employee, _ := testutil.NewEmployeeBuilder().WithCompany(company).Build(t, testDB.DB)

	for _, clock := range []string{
		"2024-03-14T09:00:00Z",
		"2024-03-15T09:00:00Z",
		"2024-03-15T09:30:00Z",
		"2024-03-15T11:00:00Z",
	} {
		ts, err := time.Parse(time.RFC3339, clock)
		require.NoError(t, err)
		testutil.NewCaptureBuilder().WithEmployee(employee).At(ts).Build(t, testDB.DB)
	}

	t.Run("dates descending with distinct hours", func(t *testing.T) {
		summaries, err := svc.Summary(ctx, company.ID, employee.ID, "", "")
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		assert.Equal(t, "2024-03-15", summaries[0].Date)
		assert.Equal(t, int64(3), summaries[0].ScreenshotCount)
		assert.Equal(t, int64(2), summaries[0].ActiveHours)

		assert.Equal(t, "2024-03-14", summaries[1].Date)
		assert.Equal(t, int64(1), summaries[1].ScreenshotCount)
		assert.Equal(t, int64(1), summaries[1].ActiveHours)
	})

	t.Run("range filter", func(t *testing.T) {
		summaries, err := svc.Summary(ctx, company.ID, employee.ID, "2024-03-15", "2024-03-15")
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "2024-03-15", summaries[0].Date)
	})

	t.Run("cross-tenant employee id is rejected", func(t *testing.T) {
		_, err := svc.Summary(ctx, intruder.ID, employee.ID, "", "")
		assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
	})
}

func TestCaptureService_GetAndDelete(t *testing.T) {
	svc, testDB, objects := newCaptureService(t)
	ctx := context.Background()

	company, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	intruder, _ := testutil.NewCompanyBuilder().Build(t, testDB.DB)
	employee, _ := testutil.NewEmployeeBuilder().WithCompany(company).Build(t, testDB.DB)

	uploaded, err := svc.Upload(ctx, identityFor(employee), service.UploadInput{
		Filename: "shot.png",
		Content:  strings.NewReader("bytes"),
	})
	require.NoError(t, err)

	t.Run("get in tenant", func(t *testing.T) {
		got, err := svc.Get(ctx, company.ID, uploaded.ID)
		require.NoError(t, err)
		assert.Equal(t, uploaded.ID, got.ID)
	})

	t.Run("get across tenants", func(t *testing.T) {
		_, err := svc.Get(ctx, intruder.ID, uploaded.ID)
		assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
	})

	t.Run("get unknown id", func(t *testing.T) {
		_, err := svc.Get(ctx, company.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrCaptureNotFound)
	})

	t.Run("delete across tenants leaves the record", func(t *testing.T) {
		err := svc.Delete(ctx, intruder.ID, uploaded.ID)
		assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

		_, err = svc.Get(ctx, company.ID, uploaded.ID)
		require.NoError(t, err)
	})

	t.Run("delete removes record and object", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, company.ID, uploaded.ID))

		_, err := svc.Get(ctx, company.ID, uploaded.ID)
		assert.ErrorIs(t, err, domain.ErrCaptureNotFound)

		_, ok := objects.Get(uploaded.StorageLocator)
		assert.False(t, ok)
	})
}
