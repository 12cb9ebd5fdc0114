package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutInstance is one concrete, dated workout on the calendar. It is
// created by pattern expansion, ad hoc scheduling, or the copy engine.
// TemplateID/PatternID are nil for ad hoc workouts. The prescription list is
// a by-value snapshot taken at creation time; later template edits do not
// reach already-scheduled instances.
type WorkoutInstance struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID  `bson:"userId" json:"userId"`
	TemplateID *primitive.ObjectID `bson:"templateId,omitempty" json:"templateId,omitempty"`
	PatternID  *primitive.ObjectID `bson:"patternId,omitempty" json:"patternId,omitempty"`

	Name              string                 `bson:"name" json:"name"`
	WorkoutType       WorkoutType            `bson:"workoutType" json:"workoutType"`
	EstimatedDuration int                    `bson:"estimatedDuration,omitempty" json:"estimatedDuration,omitempty"` // minutes
	ScheduledDate     time.Time              `bson:"scheduledDate" json:"scheduledDate"`                             // calendar date, midnight UTC
	Exercises         []ExercisePrescription `bson:"exercises" json:"exercises"`

	// Execution state. ScheduledAt is always set (creation time); CompletedAt
	// stays nil until the workout is finished; CompletedSets exists only after
	// execution begins.
	ScheduledAt   time.Time      `bson:"scheduledAt" json:"scheduledAt"`
	CompletedAt   *time.Time     `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CompletedSets []CompletedSet `bson:"completedSets,omitempty" json:"completedSets,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CompletedSet records one performed set during execution.
type CompletedSet struct {
	OrderIndex  int       `bson:"orderIndex" json:"orderIndex"` // which prescription this set belongs to
	SetNumber   int       `bson:"setNumber" json:"setNumber"`
	Reps        int       `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight      float64   `bson:"weight,omitempty" json:"weight,omitempty"`
	PerformedAt time.Time `bson:"performedAt" json:"performedAt"`
}
