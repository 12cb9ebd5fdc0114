package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType categorizes a workout or template.
type WorkoutType string

const (
	WorkoutStrength    WorkoutType = "strength"
	WorkoutCardio      WorkoutType = "cardio"
	WorkoutFlexibility WorkoutType = "flexibility"
	WorkoutMixed       WorkoutType = "mixed"
)

// WorkoutTemplate is the reusable shape of a workout: what exercises it
// contains and in which order. Recurring patterns reference a template and
// every generated instance snapshots its prescriptions by value, so editing
// a template never changes workouts that were already scheduled.
type WorkoutTemplate struct {
	ID                primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID     `bson:"userId" json:"userId"`
	Name              string                 `bson:"name" json:"name"`
	WorkoutType       WorkoutType            `bson:"workoutType" json:"workoutType"`
	EstimatedDuration int                    `bson:"estimatedDuration,omitempty" json:"estimatedDuration,omitempty"` // minutes
	Exercises         []ExercisePrescription `bson:"exercises" json:"exercises"`
	CreatedAt         time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// ExercisePrescription is one exercise within a template or workout instance.
// OrderIndex is zero-based and contiguous within the owning workout and
// defines execution order. All targets are independent optionals; cardio
// entries conventionally carry duration/distance rather than sets/reps.
type ExercisePrescription struct {
	ExerciseID      string   `bson:"exerciseId" json:"exerciseId"`
	OrderIndex      int      `bson:"orderIndex" json:"orderIndex"`
	Sets            *int     `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps            *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight          *float64 `bson:"weight,omitempty" json:"weight,omitempty"`     // kg
	Duration        *int     `bson:"duration,omitempty" json:"duration,omitempty"` // seconds
	Distance        *float64 `bson:"distance,omitempty" json:"distance,omitempty"` // meters
	RestBetweenSets *int     `bson:"restBetweenSets,omitempty" json:"restBetweenSets,omitempty"` // seconds
}

// Clone returns a by-value copy of the prescription, including fresh copies
// of the optional target pointers.
func (p ExercisePrescription) Clone() ExercisePrescription {
	out := p
	out.Sets = cloneIntPtr(p.Sets)
	out.Reps = cloneIntPtr(p.Reps)
	out.Weight = cloneFloatPtr(p.Weight)
	out.Duration = cloneIntPtr(p.Duration)
	out.Distance = cloneFloatPtr(p.Distance)
	out.RestBetweenSets = cloneIntPtr(p.RestBetweenSets)
	return out
}

// ClonePrescriptions deep-copies a prescription list, preserving order
// indices and targets.
func ClonePrescriptions(in []ExercisePrescription) []ExercisePrescription {
	out := make([]ExercisePrescription, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
