package aggregate_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/aggregate"
	"github.com/maheshk/workpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureAt(t *testing.T, clock string) *domain.Capture {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, clock)
	require.NoError(t, err)
	return &domain.Capture{
		ID:             uuid.New(),
		StorageLocator: "shots/" + clock + ".png",
		CapturedAt:     ts,
	}
}

func TestPartsOf(t *testing.T) {
	tests := []struct {
		name       string
		clock      string
		wantDate   string
		wantHour   int
		wantMinute int
	}{
		{name: "mid morning", clock: "2024-03-15T09:02:30Z", wantDate: "2024-03-15", wantHour: 9, wantMinute: 2},
		{name: "top of hour", clock: "2024-03-15T10:00:00Z", wantDate: "2024-03-15", wantHour: 10, wantMinute: 0},
		{name: "last minute of hour", clock: "2024-03-15T10:59:59Z", wantDate: "2024-03-15", wantHour: 10, wantMinute: 59},
		{name: "non-utc normalized", clock: "2024-03-15T01:30:00+05:00", wantDate: "2024-03-14", wantHour: 20, wantMinute: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := time.Parse(time.RFC3339, tt.clock)
			require.NoError(t, err)

			parts := aggregate.PartsOf(ts)
			assert.Equal(t, tt.wantDate, parts.Date.Format("2006-01-02"))
			assert.Equal(t, tt.wantHour, parts.Hour)
			assert.Equal(t, tt.wantMinute, parts.Minute)
		})
	}
}

func TestGroupDay_BucketBoundaries(t *testing.T) {
	tests := []struct {
		name         string
		clock        string
		want5        int
		want5Span    [2]int
		want10       int
		want10Span   [2]int
	}{
		{name: "minute 0", clock: "2024-03-15T09:00:00Z", want5: 0, want5Span: [2]int{0, 4}, want10: 0, want10Span: [2]int{0, 9}},
		{name: "minute 59", clock: "2024-03-15T09:59:00Z", want5: 11, want5Span: [2]int{55, 59}, want10: 5, want10Span: [2]int{50, 59}},
		{name: "minute 30", clock: "2024-03-15T09:30:00Z", want5: 6, want5Span: [2]int{30, 34}, want10: 3, want10Span: [2]int{30, 39}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := aggregate.GroupDay([]*domain.Capture{captureAt(t, tt.clock)})
			require.Len(t, groups, 1)
			require.Len(t, groups[0].Intervals5Min, 1)
			require.Len(t, groups[0].Intervals10Min, 1)

			five := groups[0].Intervals5Min[0]
			assert.Equal(t, tt.want5, five.Interval)
			assert.Equal(t, tt.want5Span[0], five.StartMinute)
			assert.Equal(t, tt.want5Span[1], five.EndMinute)

			ten := groups[0].Intervals10Min[0]
			assert.Equal(t, tt.want10, ten.Interval)
			assert.Equal(t, tt.want10Span[0], ten.StartMinute)
			assert.Equal(t, tt.want10Span[1], ten.EndMinute)
		})
	}
}

func TestGroupDay_ParallelGroupings(t *testing.T) {
	// 09:02 and 09:07 fall in different 5-minute buckets but share the
	// 10-minute bucket [0,9]; 10:59 lands alone in hour 10.
	captures := []*domain.Capture{
		captureAt(t, "2024-03-15T09:02:00Z"),
		captureAt(t, "2024-03-15T09:07:00Z"),
		captureAt(t, "2024-03-15T10:59:00Z"),
	}

	groups := aggregate.GroupDay(captures)
	require.Len(t, groups, 2)

	hour9 := groups[0]
	assert.Equal(t, 9, hour9.Hour)
	require.Len(t, hour9.Intervals5Min, 2)
	assert.Equal(t, 0, hour9.Intervals5Min[0].Interval)
	assert.Len(t, hour9.Intervals5Min[0].Screenshots, 1)
	assert.Equal(t, 2, hour9.Intervals5Min[0].Screenshots[0].Minute)
	assert.Equal(t, 1, hour9.Intervals5Min[1].Interval)
	assert.Len(t, hour9.Intervals5Min[1].Screenshots, 1)
	assert.Equal(t, 7, hour9.Intervals5Min[1].Screenshots[0].Minute)

	require.Len(t, hour9.Intervals10Min, 1)
	assert.Equal(t, 0, hour9.Intervals10Min[0].Interval)
	assert.Len(t, hour9.Intervals10Min[0].Screenshots, 2, "both captures share the 10-minute bucket")

	hour10 := groups[1]
	assert.Equal(t, 10, hour10.Hour)
	require.Len(t, hour10.Intervals5Min, 1)
	assert.Equal(t, 11, hour10.Intervals5Min[0].Interval)
	require.Len(t, hour10.Intervals10Min, 1)
	assert.Equal(t, 5, hour10.Intervals10Min[0].Interval)
}

func TestGroupDay_OrderIndependent(t *testing.T) {
	a := captureAt(t, "2024-03-15T09:02:00Z")
	b := captureAt(t, "2024-03-15T09:03:00Z")
	c := captureAt(t, "2024-03-15T14:40:00Z")

	forward := aggregate.GroupDay([]*domain.Capture{a, b, c})
	reversed := aggregate.GroupDay([]*domain.Capture{c, b, a})

	assert.Equal(t, forward, reversed)

	// Chronological order preserved inside the shared bucket
	require.Len(t, reversed[0].Intervals5Min, 1)
	shots := reversed[0].Intervals5Min[0].Screenshots
	require.Len(t, shots, 2)
	assert.Equal(t, a.ID, shots[0].ID)
	assert.Equal(t, b.ID, shots[1].ID)
}

func TestGroupDay_Idempotent(t *testing.T) {
	captures := []*domain.Capture{
		captureAt(t, "2024-03-15T09:02:00Z"),
		captureAt(t, "2024-03-15T09:07:00Z"),
		captureAt(t, "2024-03-15T23:59:00Z"),
	}

	first := aggregate.GroupDay(captures)
	second := aggregate.GroupDay(captures)
	assert.Equal(t, first, second)
}

func TestGroupDay_Empty(t *testing.T) {
	assert.Empty(t, aggregate.GroupDay(nil))
	assert.Empty(t, aggregate.GroupDay([]*domain.Capture{}))
}

func TestGroupDay_HoursAscending(t *testing.T) {
	captures := []*domain.Capture{
		captureAt(t, "2024-03-15T17:10:00Z"),
		captureAt(t, "2024-03-15T08:15:00Z"),
		captureAt(t, "2024-03-15T12:45:00Z"),
	}

	groups := aggregate.GroupDay(captures)
	require.Len(t, groups, 3)
	assert.Equal(t, 8, groups[0].Hour)
	assert.Equal(t, 12, groups[1].Hour)
	assert.Equal(t, 17, groups[2].Hour)
}
