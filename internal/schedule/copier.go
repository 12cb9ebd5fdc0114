package schedule

import (
	"alcyxob/workout-scheduler/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanCopy builds unpersisted clones of the source instances for the given
// selection. Clones keep the source's name, type, duration, template/pattern
// references and a deep copy of its exercise prescriptions (same order
// indices, same targets), and reset all execution state: CompletedAt is nil
// and per-exercise completed-set history is dropped. Sources are never
// mutated and their relative order is preserved in the output.
//
// Date assignment: workout and day copies land every clone on TargetDate;
// week copies shift each clone by the fixed day offset from SourceWeekStart
// to TargetWeekStart, so a Tuesday workout copies to the Tuesday of the
// target week.
//
// An empty source list yields an empty plan; that is a no-op, not an error.
// The engine does not look at what already exists on the target dates, so
// copying onto an occupied date stacks workouts.
func PlanCopy(sel domain.CopySelection, sources []domain.WorkoutInstance) []domain.WorkoutInstance {
	shiftDays := 0
	if sel.Kind == domain.CopyWeek {
		shiftDays = domain.DaysBetween(sel.SourceWeekStart, sel.TargetWeekStart)
	}

	clones := make([]domain.WorkoutInstance, 0, len(sources))
	for _, src := range sources {
		clone := cloneInstance(&src)
		if sel.Kind == domain.CopyWeek {
			clone.ScheduledDate = domain.DateOnly(src.ScheduledDate).AddDate(0, 0, shiftDays)
		} else {
			clone.ScheduledDate = domain.DateOnly(sel.TargetDate)
		}
		clones = append(clones, clone)
	}
	return clones
}

// cloneInstance copies everything structural and nothing executional.
// ID, ScheduledAt and timestamps are left zero for the store to assign.
func cloneInstance(src *domain.WorkoutInstance) domain.WorkoutInstance {
	return domain.WorkoutInstance{
		UserID:            src.UserID,
		TemplateID:        cloneObjectIDPtr(src.TemplateID),
		PatternID:         cloneObjectIDPtr(src.PatternID),
		Name:              src.Name,
		WorkoutType:       src.WorkoutType,
		EstimatedDuration: src.EstimatedDuration,
		Exercises:         domain.ClonePrescriptions(src.Exercises),
	}
}

func cloneObjectIDPtr(id *primitive.ObjectID) *primitive.ObjectID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
