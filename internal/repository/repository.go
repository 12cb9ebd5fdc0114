package repository

import (
	"alcyxob/workout-scheduler/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// TemplateRepository defines the interface for interacting with workout templates.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *domain.WorkoutTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	Update(ctx context.Context, tpl *domain.WorkoutTemplate) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error // Ensure user owns the template
}

// PatternRepository defines the interface for interacting with recurring patterns.
type PatternRepository interface {
	Create(ctx context.Context, pattern *domain.RecurringPattern) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RecurringPattern, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.RecurringPattern, error)
	Deactivate(ctx context.Context, id, userID primitive.ObjectID) error
}

// InstanceRepository is the workout store: scheduled workout occurrences.
// CreateMany must be atomic: materializing a pattern into N instances either
// fully succeeds or leaves nothing behind.
type InstanceRepository interface {
	Create(ctx context.Context, instance *domain.WorkoutInstance) (primitive.ObjectID, error)
	CreateMany(ctx context.Context, instances []domain.WorkoutInstance) ([]primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutInstance, error)
	GetByDate(ctx context.Context, date time.Time) ([]domain.WorkoutInstance, error)
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.WorkoutInstance, error)
	GetByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutInstance, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}
