// Package schedule holds the two pure computations at the heart of the
// scheduler: expanding a recurring pattern into concrete calendar dates, and
// planning copies of existing workouts onto new dates. Neither function does
// I/O or keeps state; persistence is the service layer's job.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"alcyxob/workout-scheduler/internal/domain"
)

const (
	// DefaultMaxOccurrences caps a single expansion. Exceeding it fails with
	// ErrPatternTooLarge instead of silently truncating.
	DefaultMaxOccurrences = 500

	// PreviewDays is the horizon used for live preview expansions.
	PreviewDays = 14
)

// ErrPatternTooLarge means the pattern's projected occurrence count exceeds
// the configured cap.
var ErrPatternTooLarge = errors.New("pattern expansion exceeds occurrence limit")

// Expand turns a recurring pattern into the ordered list of calendar dates
// on which a workout occurrence should exist, bounded by windowEnd
// (inclusive) and by the pattern's own duration. Output dates are midnight
// UTC, strictly ascending and distinct. Expansion is a pure function:
// identical inputs always yield identical output.
//
// Occurrence placement by frequency:
//   - daily: every date from start through the window end.
//   - weekly: weeks are anchored on the Sunday containing start; each
//     selected weekday is emitted when its date falls inside [start, end],
//     so a partial first week drops the days before start.
//   - custom: timesPerWeek is advisory spacing, not a weekday assignment.
//     Occurrence i of each 7-day window starting at start lands at day
//     offset i*7/timesPerWeek (integer division); equal offsets collapse,
//     so timesPerWeek above 7 degrades to daily. The final partial week
//     keeps only the offsets that still fit, pro-rating the count.
func Expand(p domain.RecurringPattern, windowEnd time.Time) ([]time.Time, error) {
	return ExpandCapped(p, windowEnd, DefaultMaxOccurrences)
}

// ExpandCapped is Expand with an explicit occurrence cap. A cap of zero or
// below disables the limit.
func ExpandCapped(p domain.RecurringPattern, windowEnd time.Time, maxOccurrences int) ([]time.Time, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := domain.DateOnly(p.StartDate)
	end := domain.DateOnly(windowEnd)
	if patternEnd := p.EndDate(); patternEnd.Before(end) {
		end = patternEnd
	}
	if end.Before(start) {
		return []time.Time{}, nil
	}

	// The cap is checked against the full-window projection before any date
	// is emitted, so a too-large pattern never produces partial output.
	projected := projectedOccurrences(p)
	if maxOccurrences > 0 && projected > maxOccurrences {
		return nil, fmt.Errorf("%w: %d occurrences over %d weeks (limit %d)",
			ErrPatternTooLarge, projected, p.DurationWeeks, maxOccurrences)
	}

	dates := make([]time.Time, 0, projected)

	switch p.Frequency {
	case domain.FrequencyDaily:
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}

	case domain.FrequencyWeekly:
		days := normalizeDays(p.DaysOfWeek)
		// Iterate calendar weeks, filtering both ends of the range; start is
		// not assumed to align with a selected weekday.
		for week := domain.WeekStart(start); !week.After(end); week = week.AddDate(0, 0, 7) {
			for _, dow := range days {
				d := week.AddDate(0, 0, dow)
				if d.Before(start) || d.After(end) {
					continue
				}
				dates = append(dates, d)
			}
		}

	case domain.FrequencyCustom:
		for week := start; !week.After(end); week = week.AddDate(0, 0, 7) {
			prev := -1
			for i := 0; i < p.TimesPerWeek; i++ {
				off := i * 7 / p.TimesPerWeek
				if off == prev {
					continue
				}
				prev = off
				d := week.AddDate(0, 0, off)
				if d.After(end) {
					break
				}
				dates = append(dates, d)
			}
		}
	}

	// Each branch emits in ascending order without repeats by construction,
	// so no sort or dedup pass is needed here.
	return dates, nil
}

// PreviewEnd returns the window end for a live-preview expansion of a
// pattern starting at start.
func PreviewEnd(start time.Time) time.Time {
	return domain.DateOnly(start).AddDate(0, 0, PreviewDays-1)
}

// projectedOccurrences is an upper bound on the number of dates a full-window
// expansion can yield.
func projectedOccurrences(p domain.RecurringPattern) int {
	switch p.Frequency {
	case domain.FrequencyWeekly:
		return len(normalizeDays(p.DaysOfWeek)) * p.DurationWeeks
	case domain.FrequencyCustom:
		n := p.TimesPerWeek
		if n > 7 {
			n = 7 // spacing offsets collapse beyond one per day
		}
		return n * p.DurationWeeks
	default:
		return p.DurationWeeks * 7
	}
}

// normalizeDays sorts the weekday set ascending and drops duplicates.
func normalizeDays(days []int) []int {
	out := make([]int, len(days))
	copy(out, days)
	sort.Ints(out)
	n := 0
	for i, d := range out {
		if i > 0 && d == out[i-1] {
			continue
		}
		out[n] = d
		n++
	}
	return out[:n]
}
