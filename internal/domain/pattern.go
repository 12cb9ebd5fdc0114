package domain

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Frequency selects how a recurring pattern lays occurrences onto the calendar.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

// Duration bounds for a pattern, in weeks.
const (
	MinDurationWeeks = 1
	MaxDurationWeeks = 52
)

// ErrInvalidPattern is wrapped by all pattern validation failures so callers
// can match the whole family with errors.Is.
var ErrInvalidPattern = errors.New("invalid recurring pattern")

// RecurringPattern is a user-authored recurrence rule referencing a workout
// template. A pattern is expanded into concrete WorkoutInstance rows exactly
// once, when it is created; editing or deactivating it afterwards never
// touches the instances it already generated.
type RecurringPattern struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	TemplateID  primitive.ObjectID `bson:"templateId" json:"templateId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Frequency   Frequency          `bson:"frequency" json:"frequency"`

	// DaysOfWeek is the weekly-mode payload: weekday indices, 0 = Sunday.
	DaysOfWeek []int `bson:"daysOfWeek,omitempty" json:"daysOfWeek,omitempty"`
	// TimesPerWeek is the custom-mode payload: an advisory count, not a
	// weekday assignment. The expander spaces occurrences evenly.
	TimesPerWeek int `bson:"timesPerWeek,omitempty" json:"timesPerWeek,omitempty"`

	StartDate     time.Time `bson:"startDate" json:"startDate"` // inclusive, calendar date
	DurationWeeks int       `bson:"durationWeeks" json:"durationWeeks"`
	Active        bool      `bson:"active" json:"active"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the mode-dependent invariants. It returns an error wrapping
// ErrInvalidPattern naming the specific violated invariant, or nil.
func (p *RecurringPattern) Validate() error {
	if p.DurationWeeks < MinDurationWeeks || p.DurationWeeks > MaxDurationWeeks {
		return fmt.Errorf("%w: durationWeeks must be between %d and %d, got %d",
			ErrInvalidPattern, MinDurationWeeks, MaxDurationWeeks, p.DurationWeeks)
	}

	switch p.Frequency {
	case FrequencyDaily:
		// No mode payload.
	case FrequencyWeekly:
		if len(p.DaysOfWeek) == 0 {
			return fmt.Errorf("%w: weekly frequency requires at least one day of week", ErrInvalidPattern)
		}
		for _, d := range p.DaysOfWeek {
			if d < 0 || d > 6 {
				return fmt.Errorf("%w: day of week %d out of range 0-6", ErrInvalidPattern, d)
			}
		}
	case FrequencyCustom:
		if p.TimesPerWeek < 1 {
			return fmt.Errorf("%w: custom frequency requires timesPerWeek >= 1, got %d",
				ErrInvalidPattern, p.TimesPerWeek)
		}
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidPattern, p.Frequency)
	}

	return nil
}

// EndDate returns the last date covered by the pattern's full window:
// start + durationWeeks*7 - 1 days.
func (p *RecurringPattern) EndDate() time.Time {
	return DateOnly(p.StartDate).AddDate(0, 0, p.DurationWeeks*7-1)
}
