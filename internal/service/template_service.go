package service

import (
	"alcyxob/workout-scheduler/internal/domain"
	"alcyxob/workout-scheduler/internal/repository"
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTemplateNotFound     = errors.New("workout template not found")
	ErrTemplateAccessDenied = errors.New("access denied to modify or delete this template")
	ErrValidationFailed     = errors.New("template validation failed")
)

// --- Service Interface ---
type TemplateService interface {
	CreateTemplate(ctx context.Context, userID primitive.ObjectID, name string, workoutType domain.WorkoutType, estimatedDuration int, exercises []domain.ExercisePrescription) (*domain.WorkoutTemplate, error)
	GetTemplateByID(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error)
	GetTemplatesByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	UpdateTemplate(ctx context.Context, userID, templateID primitive.ObjectID, name string, workoutType domain.WorkoutType, estimatedDuration int, exercises []domain.ExercisePrescription) (*domain.WorkoutTemplate, error)
	DeleteTemplate(ctx context.Context, userID, templateID primitive.ObjectID) error
}

// --- Service Implementation ---

// templateService implements the TemplateService interface.
type templateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
	}
}

// validateExercises checks the order-index invariant: zero-based and
// contiguous within the template.
func validateExercises(exercises []domain.ExercisePrescription) error {
	for i, ex := range exercises {
		if ex.ExerciseID == "" {
			return fmt.Errorf("%w: exercise at position %d has no exercise ID", ErrValidationFailed, i)
		}
		if ex.OrderIndex != i {
			return fmt.Errorf("%w: exercise order indices must be zero-based and contiguous (position %d has index %d)",
				ErrValidationFailed, i, ex.OrderIndex)
		}
	}
	return nil
}

func validateWorkoutType(t domain.WorkoutType) error {
	switch t {
	case domain.WorkoutStrength, domain.WorkoutCardio, domain.WorkoutFlexibility, domain.WorkoutMixed:
		return nil
	}
	return fmt.Errorf("%w: unknown workout type %q", ErrValidationFailed, t)
}

// CreateTemplate handles the creation of a new workout template.
func (s *templateService) CreateTemplate(ctx context.Context, userID primitive.ObjectID, name string, workoutType domain.WorkoutType, estimatedDuration int, exercises []domain.ExercisePrescription) (*domain.WorkoutTemplate, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a template")
	}
	if err := validateWorkoutType(workoutType); err != nil {
		return nil, err
	}
	if err := validateExercises(exercises); err != nil {
		return nil, err
	}

	tpl := &domain.WorkoutTemplate{
		UserID:            userID,
		Name:              name,
		WorkoutType:       workoutType,
		EstimatedDuration: estimatedDuration,
		Exercises:         exercises,
	}

	templateID, err := s.templateRepo.Create(ctx, tpl)
	if err != nil {
		return nil, err
	}
	// Fetch again to get repository-populated timestamps.
	return s.templateRepo.GetByID(ctx, templateID)
}

// GetTemplateByID retrieves a single template, enforcing ownership.
func (s *templateService) GetTemplateByID(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	tpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if tpl.UserID != userID {
		return nil, ErrTemplateAccessDenied
	}
	return tpl, nil
}

// GetTemplatesByUser retrieves all templates for a user.
func (s *templateService) GetTemplatesByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.templateRepo.GetByUserID(ctx, userID)
}

// UpdateTemplate handles updating an existing template, ensuring ownership.
// Patterns snapshot prescriptions at expansion time, so editing a template
// never alters workouts that were already scheduled from it.
func (s *templateService) UpdateTemplate(ctx context.Context, userID, templateID primitive.ObjectID, name string, workoutType domain.WorkoutType, estimatedDuration int, exercises []domain.ExercisePrescription) (*domain.WorkoutTemplate, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if userID == primitive.NilObjectID || templateID == primitive.NilObjectID {
		return nil, errors.New("user ID and template ID are required")
	}
	if err := validateWorkoutType(workoutType); err != nil {
		return nil, err
	}
	if err := validateExercises(exercises); err != nil {
		return nil, err
	}

	existing, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrTemplateAccessDenied
	}

	existing.Name = name
	existing.WorkoutType = workoutType
	existing.EstimatedDuration = estimatedDuration
	existing.Exercises = exercises

	if err := s.templateRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteTemplate handles deleting a template, ensuring ownership.
func (s *templateService) DeleteTemplate(ctx context.Context, userID, templateID primitive.ObjectID) error {
	if userID == primitive.NilObjectID || templateID == primitive.NilObjectID {
		return errors.New("user ID and template ID are required")
	}

	// The repository's Delete filter already includes the user ID, so
	// ownership is enforced at the DB level.
	err := s.templateRepo.Delete(ctx, templateID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	return nil
}
