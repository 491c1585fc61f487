// Package aggregate buckets capture records into the time groupings the
// dashboard renders: hour groups containing parallel 5-minute and 10-minute
// interval sequences. Everything here is a pure function over timestamps; the
// storage layer persists the derived parts but never computes them.
package aggregate

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/maheshk/workpulse/internal/domain"
)

// TimeParts are the calendar fields derived from a capture timestamp, fixed
// at write time. Derivation is always in UTC so buckets never shift if the
// server timezone changes.
type TimeParts struct {
	Date   time.Time
	Hour   int
	Minute int
}

func PartsOf(t time.Time) TimeParts {
	u := t.UTC()
	return TimeParts{
		Date:   time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC),
		Hour:   u.Hour(),
		Minute: u.Minute(),
	}
}

// Entry is one capture as it appears inside a bucket.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	FilePath   string    `json:"file_path"`
	FileSize   *int64    `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
	Minute     int       `json:"minute"`
}

// Bucket is a fixed-width subdivision of an hour. Interval b of width w spans
// minutes [w*b, w*b+w-1]. Entries keep chronological order.
type Bucket struct {
	Interval    int     `json:"interval"`
	StartMinute int     `json:"start_minute"`
	EndMinute   int     `json:"end_minute"`
	Screenshots []Entry `json:"screenshots"`
}

// HourGroup holds the two parallel groupings over the same records: every
// record appears in exactly one 5-minute bucket and one 10-minute bucket.
type HourGroup struct {
	Hour           int      `json:"hour"`
	Intervals5Min  []Bucket `json:"intervals_5min"`
	Intervals10Min []Bucket `json:"intervals_10min"`
}

// GroupDay buckets one employee's captures for a single calendar date. The
// output is ordered hour ascending, bucket ascending, and is independent of
// the input order: records are sorted by capture time before grouping.
func GroupDay(captures []*domain.Capture) []HourGroup {
	ordered := make([]*domain.Capture, len(captures))
	copy(ordered, captures)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CapturedAt.Before(ordered[j].CapturedAt)
	})

	type hourBuckets struct {
		five map[int]*Bucket
		ten  map[int]*Bucket
	}
	hours := make(map[int]*hourBuckets)

	for _, c := range ordered {
		parts := PartsOf(c.CapturedAt)

		hb, ok := hours[parts.Hour]
		if !ok {
			hb = &hourBuckets{five: make(map[int]*Bucket), ten: make(map[int]*Bucket)}
			hours[parts.Hour] = hb
		}

		entry := Entry{
			ID:         c.ID,
			FilePath:   c.StorageLocator,
			FileSize:   c.ByteSize,
			UploadedAt: c.CapturedAt,
			Minute:     parts.Minute,
		}

		appendEntry(hb.five, parts.Minute/5, 5, entry)
		appendEntry(hb.ten, parts.Minute/10, 10, entry)
	}

	hourKeys := make([]int, 0, len(hours))
	for h := range hours {
		hourKeys = append(hourKeys, h)
	}
	sort.Ints(hourKeys)

	groups := make([]HourGroup, 0, len(hourKeys))
	for _, h := range hourKeys {
		hb := hours[h]
		groups = append(groups, HourGroup{
			Hour:           h,
			Intervals5Min:  sortedBuckets(hb.five),
			Intervals10Min: sortedBuckets(hb.ten),
		})
	}

	return groups
}

func appendEntry(buckets map[int]*Bucket, interval, width int, entry Entry) {
	b, ok := buckets[interval]
	if !ok {
		b = &Bucket{
			Interval:    interval,
			StartMinute: interval * width,
			EndMinute:   interval*width + width - 1,
		}
		buckets[interval] = b
	}
	b.Screenshots = append(b.Screenshots, entry)
}

func sortedBuckets(buckets map[int]*Bucket) []Bucket {
	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *buckets[k])
	}
	return out
}
