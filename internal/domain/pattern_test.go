package domain_test

import (
	"testing"
	"time"

	"alcyxob/workout-scheduler/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternValidate(t *testing.T) {
	valid := domain.RecurringPattern{
		Frequency:     domain.FrequencyWeekly,
		DaysOfWeek:    []int{1, 3, 5},
		StartDate:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		DurationWeeks: 4,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *domain.RecurringPattern)
	}{
		{"weekly without days", func(p *domain.RecurringPattern) { p.DaysOfWeek = nil }},
		{"weekday above range", func(p *domain.RecurringPattern) { p.DaysOfWeek = []int{7} }},
		{"weekday below range", func(p *domain.RecurringPattern) { p.DaysOfWeek = []int{-1} }},
		{"duration zero", func(p *domain.RecurringPattern) { p.DurationWeeks = 0 }},
		{"duration above max", func(p *domain.RecurringPattern) { p.DurationWeeks = 53 }},
		{"unknown frequency", func(p *domain.RecurringPattern) { p.Frequency = "fortnightly" }},
		{"custom without count", func(p *domain.RecurringPattern) {
			p.Frequency = domain.FrequencyCustom
			p.TimesPerWeek = 0
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			assert.ErrorIs(t, p.Validate(), domain.ErrInvalidPattern)
		})
	}

	daily := valid
	daily.Frequency = domain.FrequencyDaily
	daily.DaysOfWeek = nil
	assert.NoError(t, daily.Validate(), "daily requires no mode payload")
}

func TestPatternEndDate(t *testing.T) {
	p := domain.RecurringPattern{
		StartDate:     time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC),
		DurationWeeks: 2,
	}
	assert.True(t, time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC).Equal(p.EndDate()))
}

func TestDateHelpers(t *testing.T) {
	noon := time.Date(2024, time.January, 9, 12, 45, 3, 0, time.UTC)
	assert.True(t, time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC).Equal(domain.DateOnly(noon)))

	// 2024-01-09 is a Tuesday; its week starts Sunday 2024-01-07.
	assert.True(t, time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC).Equal(domain.WeekStart(noon)))

	assert.Equal(t, 28, domain.DaysBetween(
		time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 4, 0, 0, 0, 0, time.UTC),
	))
	assert.Equal(t, -7, domain.DaysBetween(
		time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC),
	))
}
