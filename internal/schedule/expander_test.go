package schedule_test

import (
	"testing"
	"time"

	"alcyxob/workout-scheduler/internal/domain"
	"alcyxob/workout-scheduler/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datesEqual(t *testing.T, expected []time.Time, got []time.Time) {
	t.Helper()
	require.Len(t, got, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Equal(got[i]), "index %d: expected %s, got %s", i, expected[i], got[i])
	}
}

func TestExpand_Daily_OneWeek(t *testing.T) {
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyDaily,
		StartDate:     date(2024, time.January, 1),
		DurationWeeks: 1,
	}

	dates, err := schedule.Expand(p, p.EndDate())
	require.NoError(t, err)

	datesEqual(t, []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 2),
		date(2024, time.January, 3),
		date(2024, time.January, 4),
		date(2024, time.January, 5),
		date(2024, time.January, 6),
		date(2024, time.January, 7),
	}, dates)
}

func TestExpand_Daily_CountInvariant(t *testing.T) {
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyDaily,
		StartDate:     date(2024, time.March, 14),
		DurationWeeks: 4,
	}

	dates, err := schedule.Expand(p, p.EndDate())
	require.NoError(t, err)
	assert.Len(t, dates, 28)
}

func TestExpand_Weekly_MonWedFri(t *testing.T) {
	// 2024-01-01 is a Monday.
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyWeekly,
		DaysOfWeek:    []int{1, 3, 5},
		StartDate:     date(2024, time.January, 1),
		DurationWeeks: 2,
	}

	dates, err := schedule.Expand(p, p.EndDate())
	require.NoError(t, err)

	datesEqual(t, []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 3),
		date(2024, time.January, 5),
		date(2024, time.January, 8),
		date(2024, time.January, 10),
		date(2024, time.January, 12),
	}, dates)
}

func TestExpand_Weekly_PartialFirstWeekExcluded(t *testing.T) {
	// Start on Wednesday 2024-01-03; the Monday of that same calendar week
	// precedes the start date and must not appear.
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyWeekly,
		DaysOfWeek:    []int{1, 5},
		StartDate:     date(2024, time.January, 3),
		DurationWeeks: 2,
	}

	dates, err := schedule.Expand(p, p.EndDate())
	require.NoError(t, err)

	datesEqual(t, []time.Time{
		date(2024, time.January, 5),  // Fri, week of Dec 31
		date(2024, time.January, 8),  // Mon
		date(2024, time.January, 12), // Fri
		date(2024, time.January, 15), // Mon; Fri Jan 19 is past the window
	}, dates)
}

func TestExpand_Weekly_UnsortedDuplicateDays(t *testing.T) {
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyWeekly,
		DaysOfWeek:    []int{5, 1, 3, 3, 1},
		StartDate:     date(2024, time.January, 1),
		DurationWeeks: 1,
	}

	dates, err := schedule.Expand(p, p.EndDate())
	require.NoError(t, err)

	datesEqual(t, []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 3),
		date(2024, time.January, 5),
	}, dates)
}

func TestExpand_Custom_ThreePerWeek(t *testing.T) {
	// Even-spacing policy: offsets i*7/3 = 0, 2, 4 within each week window.
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyCustom,
		TimesPerWeek:  3,
		StartDate:     date(2024, time.January, 1),
		DurationWeeks: 2,
	}

	dates, err := schedule.Expand(p, p.EndDate())
	require.NoError(t, err)

	datesEqual(t, []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 3),
		date(2024, time.January, 5),
		date(2024, time.January, 8),
		date(2024, time.January, 10),
		date(2024, time.January, 12),
	}, dates)
}

func TestExpand_Custom_AboveSevenCollapsesToDaily(t *testing.T) {
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyCustom,
		TimesPerWeek:  10,
		StartDate:     date(2024, time.January, 1),
		DurationWeeks: 1,
	}

	dates, err := schedule.Expand(p, p.EndDate())
	require.NoError(t, err)
	assert.Len(t, dates, 7)
	assertAscendingDistinct(t, dates)
}

func TestExpand_Custom_PartialWeekProRated(t *testing.T) {
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyCustom,
		TimesPerWeek:  3,
		StartDate:     date(2024, time.January, 1),
		DurationWeeks: 1,
	}

	// Window cut after four days: only offsets 0 and 2 fit.
	dates, err := schedule.Expand(p, date(2024, time.January, 4))
	require.NoError(t, err)

	datesEqual(t, []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 3),
	}, dates)
}

func TestExpand_WindowBeforeStart(t *testing.T) {
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyDaily,
		StartDate:     date(2024, time.June, 10),
		DurationWeeks: 2,
	}

	dates, err := schedule.Expand(p, date(2024, time.June, 9))
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestExpand_PreviewWindowTruncates(t *testing.T) {
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyDaily,
		StartDate:     date(2024, time.January, 1),
		DurationWeeks: 8,
	}

	dates, err := schedule.Expand(p, schedule.PreviewEnd(p.StartDate))
	require.NoError(t, err)
	assert.Len(t, dates, schedule.PreviewDays)
}

func TestExpand_Idempotent(t *testing.T) {
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyWeekly,
		DaysOfWeek:    []int{0, 2, 6},
		StartDate:     date(2024, time.February, 13),
		DurationWeeks: 6,
	}

	first, err := schedule.Expand(p, p.EndDate())
	require.NoError(t, err)
	second, err := schedule.Expand(p, p.EndDate())
	require.NoError(t, err)

	datesEqual(t, first, second)
	assertAscendingDistinct(t, first)
}

func TestExpand_ExceedsOccurrenceCap(t *testing.T) {
	p := domain.RecurringPattern{
		Frequency:     domain.FrequencyDaily,
		StartDate:     date(2024, time.January, 1),
		DurationWeeks: 52,
	}

	dates, err := schedule.ExpandCapped(p, p.EndDate(), 100)
	require.ErrorIs(t, err, schedule.ErrPatternTooLarge)
	assert.Nil(t, dates)
}

func TestExpand_InvalidPatterns(t *testing.T) {
	base := domain.RecurringPattern{
		StartDate:     date(2024, time.January, 1),
		DurationWeeks: 2,
	}

	weeklyNoDays := base
	weeklyNoDays.Frequency = domain.FrequencyWeekly

	customZero := base
	customZero.Frequency = domain.FrequencyCustom
	customZero.TimesPerWeek = 0

	durationLow := base
	durationLow.Frequency = domain.FrequencyDaily
	durationLow.DurationWeeks = 0

	durationHigh := base
	durationHigh.Frequency = domain.FrequencyDaily
	durationHigh.DurationWeeks = 53

	dayOutOfRange := base
	dayOutOfRange.Frequency = domain.FrequencyWeekly
	dayOutOfRange.DaysOfWeek = []int{1, 7}

	for name, p := range map[string]domain.RecurringPattern{
		"weekly without days":      weeklyNoDays,
		"custom timesPerWeek zero": customZero,
		"duration below minimum":   durationLow,
		"duration above maximum":   durationHigh,
		"weekday out of range":     dayOutOfRange,
	} {
		_, err := schedule.Expand(p, p.StartDate.AddDate(0, 0, 30))
		assert.ErrorIs(t, err, domain.ErrInvalidPattern, name)
	}
}

func assertAscendingDistinct(t *testing.T, dates []time.Time) {
	t.Helper()
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].Before(dates[i]),
			"dates not strictly ascending at index %d: %s then %s", i, dates[i-1], dates[i])
	}
}
