package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/maheshk/workpulse/internal/repository/postgres"
	"github.com/maheshk/workpulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewCaptureRepository(testDB.DB)
	ctx := context.Background()

	employee, _ := testutil.NewEmployeeBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewEmployeeBuilder().Build(t, testDB.DB)

	at := func(clock string) time.Time {
		ts, err := time.Parse(time.RFC3339, clock)
		require.NoError(t, err)
		return ts
	}

	// Inserted out of order on purpose
	testutil.NewCaptureBuilder().WithEmployee(employee).At(at("2024-03-15T10:59:00Z")).Build(t, testDB.DB)
	testutil.NewCaptureBuilder().WithEmployee(employee).At(at("2024-03-15T09:02:00Z")).Build(t, testDB.DB)
	testutil.NewCaptureBuilder().WithEmployee(employee).At(at("2024-03-15T09:07:00Z")).Build(t, testDB.DB)
	testutil.NewCaptureBuilder().WithEmployee(employee).At(at("2024-03-14T23:30:00Z")).Build(t, testDB.DB)
	testutil.NewCaptureBuilder().WithEmployee(other).At(at("2024-03-15T09:05:00Z")).Build(t, testDB.DB)

	t.Run("ListForEmployeeOnDate orders by capture time", func(t *testing.T) {
		captures, err := repo.ListForEmployeeOnDate(ctx, employee.ID, "2024-03-15")
		require.NoError(t, err)
		require.Len(t, captures, 3)

		assert.Equal(t, 2, captures[0].CaptureMinute)
		assert.Equal(t, 7, captures[1].CaptureMinute)
		assert.Equal(t, 59, captures[2].CaptureMinute)
		for _, c := range captures {
			assert.Equal(t, employee.ID, c.EmployeeID)
		}
	})

	t.Run("ListForEmployeeOnDate empty day", func(t *testing.T) {
		captures, err := repo.ListForEmployeeOnDate(ctx, employee.ID, "2024-03-16")
		require.NoError(t, err)
		assert.Empty(t, captures)
	})

	t.Run("CountsByDate descending with distinct hours", func(t *testing.T) {
		summaries, err := repo.CountsByDate(ctx, employee.ID, "", "")
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		assert.Equal(t, "2024-03-15", summaries[0].Date)
		assert.Equal(t, int64(3), summaries[0].ScreenshotCount)
		assert.Equal(t, int64(2), summaries[0].ActiveHours)

		assert.Equal(t, "2024-03-14", summaries[1].Date)
		assert.Equal(t, int64(1), summaries[1].ScreenshotCount)
		assert.Equal(t, int64(1), summaries[1].ActiveHours)
	})

	t.Run("CountsByDate with range", func(t *testing.T) {
		summaries, err := repo.CountsByDate(ctx, employee.ID, "2024-03-14", "2024-03-14")
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "2024-03-14", summaries[0].Date)
	})
}

func TestEmployeeRepository_IncrementTokenVersion(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewEmployeeRepository(testDB.DB)
	ctx := context.Background()

	employee, _ := testutil.NewEmployeeBuilder().WithTokenVersion(4).Build(t, testDB.DB)

	bumped, err := repo.IncrementTokenVersion(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, bumped.TokenVersion)

	reloaded, err := repo.GetByID(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.TokenVersion)
}
