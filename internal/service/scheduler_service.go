package service

import (
	"alcyxob/workout-scheduler/internal/domain"
	"alcyxob/workout-scheduler/internal/repository"
	"alcyxob/workout-scheduler/internal/schedule"
	"alcyxob/workout-scheduler/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPatternNotFound  = errors.New("recurring pattern not found")
	ErrInstanceNotFound = errors.New("workout instance not found")
)

// PatternInput carries the user-authored fields of a new recurring pattern.
type PatternInput struct {
	Name          string
	Description   string
	TemplateID    primitive.ObjectID
	Frequency     domain.Frequency
	DaysOfWeek    []int
	TimesPerWeek  int
	StartDate     time.Time
	DurationWeeks int
}

// MaterializedPattern is the result of creating a pattern: the persisted
// pattern plus the IDs of every workout instance generated from it.
type MaterializedPattern struct {
	Pattern     *domain.RecurringPattern
	InstanceIDs []primitive.ObjectID
}

// --- Service Interface ---

// SchedulerService is the scheduling façade: it validates patterns, runs the
// pure expansion and copy computations, and persists their results through
// the workout store. The store's batch write is the only transactional step;
// the façade itself never retries and surfaces store failures verbatim.
type SchedulerService interface {
	CreatePattern(ctx context.Context, userID primitive.ObjectID, input PatternInput) (*MaterializedPattern, error)
	PreviewPattern(ctx context.Context, input PatternInput) ([]time.Time, error)
	GetPatterns(ctx context.Context, userID primitive.ObjectID) ([]domain.RecurringPattern, error)
	DeactivatePattern(ctx context.Context, userID, patternID primitive.ObjectID) error

	CopySchedule(ctx context.Context, userID primitive.ObjectID, sel domain.CopySelection) ([]primitive.ObjectID, error)

	GetSchedule(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutInstance, error)
	DeleteInstance(ctx context.Context, userID, instanceID primitive.ObjectID) error
	ExportSchedule(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (string, error)
}

// --- Service Implementation ---

type schedulerService struct {
	patternRepo     repository.PatternRepository
	templateRepo    repository.TemplateRepository
	instanceRepo    repository.InstanceRepository
	archive         storage.ArchiveStorage
	maxOccurrences  int
	exportURLExpiry time.Duration
}

// NewSchedulerService creates a new instance of schedulerService.
// maxOccurrences bounds a single pattern expansion; zero or below falls back
// to the package default.
func NewSchedulerService(
	patternRepo repository.PatternRepository,
	templateRepo repository.TemplateRepository,
	instanceRepo repository.InstanceRepository,
	archive storage.ArchiveStorage,
	maxOccurrences int,
) SchedulerService {
	if maxOccurrences <= 0 {
		maxOccurrences = schedule.DefaultMaxOccurrences
	}
	return &schedulerService{
		patternRepo:     patternRepo,
		templateRepo:    templateRepo,
		instanceRepo:    instanceRepo,
		archive:         archive,
		maxOccurrences:  maxOccurrences,
		exportURLExpiry: storage.DefaultPresignedURLExpiry,
	}
}

func (s *schedulerService) buildPattern(userID primitive.ObjectID, input PatternInput) domain.RecurringPattern {
	return domain.RecurringPattern{
		UserID:        userID,
		TemplateID:    input.TemplateID,
		Name:          input.Name,
		Description:   input.Description,
		Frequency:     input.Frequency,
		DaysOfWeek:    input.DaysOfWeek,
		TimesPerWeek:  input.TimesPerWeek,
		StartDate:     domain.DateOnly(input.StartDate),
		DurationWeeks: input.DurationWeeks,
		Active:        true,
	}
}

// CreatePattern validates the pattern, expands it over its full window and
// materializes one workout instance per date, snapshotting the template's
// prescriptions by value. The instance batch is persisted atomically.
// A pattern is expanded exactly once, here; it is never re-expanded.
func (s *schedulerService) CreatePattern(ctx context.Context, userID primitive.ObjectID, input PatternInput) (*MaterializedPattern, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidPattern)
	}

	pattern := s.buildPattern(userID, input)
	if err := pattern.Validate(); err != nil {
		return nil, err
	}

	// Snapshot source: the template must exist and belong to this user.
	tpl, err := s.templateRepo.GetByID(ctx, input.TemplateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if tpl.UserID != userID {
		return nil, ErrTemplateAccessDenied
	}

	// Full-window materialization; preview uses the same code path with a
	// shorter window.
	dates, err := schedule.ExpandCapped(pattern, pattern.EndDate(), s.maxOccurrences)
	if err != nil {
		return nil, err
	}

	patternID, err := s.patternRepo.Create(ctx, &pattern)
	if err != nil {
		return nil, err
	}
	pattern.ID = patternID

	instances := make([]domain.WorkoutInstance, 0, len(dates))
	for _, d := range dates {
		templateID := tpl.ID
		pid := patternID
		instances = append(instances, domain.WorkoutInstance{
			UserID:            userID,
			TemplateID:        &templateID,
			PatternID:         &pid,
			Name:              tpl.Name,
			WorkoutType:       tpl.WorkoutType,
			EstimatedDuration: tpl.EstimatedDuration,
			ScheduledDate:     d,
			Exercises:         domain.ClonePrescriptions(tpl.Exercises),
		})
	}

	instanceIDs, err := s.instanceRepo.CreateMany(ctx, instances)
	if err != nil {
		// The batch itself is atomic; deactivate the already-persisted
		// pattern row so a failed materialization is not left looking live.
		if deactivateErr := s.patternRepo.Deactivate(ctx, patternID, userID); deactivateErr != nil {
			log.Printf("ERROR: failed to deactivate pattern %s after materialization failure: %v",
				patternID.Hex(), deactivateErr)
		}
		return nil, err
	}

	return &MaterializedPattern{Pattern: &pattern, InstanceIDs: instanceIDs}, nil
}

// PreviewPattern expands a pattern over the short preview window without
// persisting anything. The UI calls this on every edit; expansion is pure,
// so repeated calls with the same input give the same dates.
func (s *schedulerService) PreviewPattern(ctx context.Context, input PatternInput) ([]time.Time, error) {
	pattern := s.buildPattern(primitive.NilObjectID, input)
	if err := pattern.Validate(); err != nil {
		return nil, err
	}
	return schedule.ExpandCapped(pattern, schedule.PreviewEnd(pattern.StartDate), s.maxOccurrences)
}

// GetPatterns lists the user's patterns.
func (s *schedulerService) GetPatterns(ctx context.Context, userID primitive.ObjectID) ([]domain.RecurringPattern, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	return s.patternRepo.GetByUserID(ctx, userID)
}

// DeactivatePattern turns a pattern off. Already-generated instances stay on
// the calendar.
func (s *schedulerService) DeactivatePattern(ctx context.Context, userID, patternID primitive.ObjectID) error {
	if userID == primitive.NilObjectID || patternID == primitive.NilObjectID {
		return errors.New("user ID and pattern ID are required")
	}
	err := s.patternRepo.Deactivate(ctx, patternID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPatternNotFound
		}
		return err
	}
	return nil
}

// CopySchedule resolves the selection into concrete source instances, plans
// the clones and persists them atomically. A selection that matches nothing
// (empty day, deleted workout) is a successful no-op, not an error. Existing
// workouts at the target dates are not consulted; duplicates are permitted.
func (s *schedulerService) CopySchedule(ctx context.Context, userID primitive.ObjectID, sel domain.CopySelection) ([]primitive.ObjectID, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}

	sources, err := s.resolveCopySources(ctx, userID, sel)
	if err != nil {
		return nil, err
	}

	clones := schedule.PlanCopy(sel, sources)
	if len(clones) == 0 {
		return []primitive.ObjectID{}, nil
	}
	return s.instanceRepo.CreateMany(ctx, clones)
}

func (s *schedulerService) resolveCopySources(ctx context.Context, userID primitive.ObjectID, sel domain.CopySelection) ([]domain.WorkoutInstance, error) {
	switch sel.Kind {
	case domain.CopyWorkout:
		instance, err := s.instanceRepo.GetByID(ctx, sel.WorkoutID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil // no-op copy
			}
			return nil, err
		}
		if instance.UserID != userID {
			return nil, nil // someone else's workout is invisible here
		}
		return []domain.WorkoutInstance{*instance}, nil

	case domain.CopyDay:
		return s.instanceRepo.GetByUserAndDate(ctx, userID, sel.SourceDate)

	case domain.CopyWeek:
		weekStart := domain.DateOnly(sel.SourceWeekStart)
		return s.instanceRepo.GetByUserAndDateRange(ctx, userID, weekStart, weekStart.AddDate(0, 0, 6))

	default:
		return nil, fmt.Errorf("unknown copy selection kind %q", sel.Kind)
	}
}

// GetSchedule is the calendar read path.
func (s *schedulerService) GetSchedule(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutInstance, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	return s.instanceRepo.GetByUserAndDateRange(ctx, userID, from, to)
}

// DeleteInstance removes a single scheduled workout, enforcing ownership.
func (s *schedulerService) DeleteInstance(ctx context.Context, userID, instanceID primitive.ObjectID) error {
	if userID == primitive.NilObjectID || instanceID == primitive.NilObjectID {
		return errors.New("user ID and instance ID are required")
	}
	err := s.instanceRepo.Delete(ctx, instanceID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInstanceNotFound
		}
		return err
	}
	return nil
}

// scheduleExport is the document written to the archive by ExportSchedule.
type scheduleExport struct {
	GeneratedAt time.Time                `json:"generatedAt"`
	From        time.Time                `json:"from"`
	To          time.Time                `json:"to"`
	Workouts    []domain.WorkoutInstance `json:"workouts"`
}

// ExportSchedule writes the user's calendar for [from, to] as a JSON document
// to the archive and returns a presigned download URL.
func (s *schedulerService) ExportSchedule(ctx context.Context, userID primitive.ObjectID, from, to time.Time) (string, error) {
	if userID == primitive.NilObjectID {
		return "", errors.New("user ID is required")
	}

	instances, err := s.instanceRepo.GetByUserAndDateRange(ctx, userID, from, to)
	if err != nil {
		return "", err
	}

	doc := scheduleExport{
		GeneratedAt: time.Now().UTC(),
		From:        domain.DateOnly(from),
		To:          domain.DateOnly(to),
		Workouts:    instances,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	// Unique key per export so concurrent exports never clobber each other.
	objectKey := fmt.Sprintf("exports/%s/%s.json", userID.Hex(), uuid.NewString())
	if err := s.archive.Upload(ctx, objectKey, "application/json", payload); err != nil {
		return "", err
	}

	return s.archive.GeneratePresignedDownloadURL(ctx, objectKey, s.exportURLExpiry)
}
