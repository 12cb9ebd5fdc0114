package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CopyKind discriminates what a CopySelection refers to.
type CopyKind string

const (
	CopyWorkout CopyKind = "workout" // one workout instance
	CopyDay     CopyKind = "day"     // every instance on a single date
	CopyWeek    CopyKind = "week"    // every instance in a 7-day window
)

// CopySelection is a transient value describing a copy request: exactly one
// of WorkoutID / SourceDate / SourceWeekStart is meaningful depending on
// Kind, plus the target anchor. For week copies the target is normalized to
// the same weekday offset as the source week start, so intra-week alignment
// is preserved.
type CopySelection struct {
	Kind CopyKind

	WorkoutID       primitive.ObjectID // Kind == CopyWorkout
	SourceDate      time.Time          // Kind == CopyDay
	SourceWeekStart time.Time          // Kind == CopyWeek

	TargetDate      time.Time // workout and day copies
	TargetWeekStart time.Time // week copies
}
