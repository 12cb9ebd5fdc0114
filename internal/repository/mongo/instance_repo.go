package mongo

import (
	"alcyxob/workout-scheduler/internal/domain"
	"alcyxob/workout-scheduler/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const instanceCollectionName = "workout_instances"

// mongoInstanceRepository implements repository.InstanceRepository
type mongoInstanceRepository struct {
	collection *mongo.Collection
}

// NewMongoInstanceRepository creates a new WorkoutInstance repository.
func NewMongoInstanceRepository(db *mongo.Database) repository.InstanceRepository {
	return &mongoInstanceRepository{
		collection: db.Collection(instanceCollectionName),
	}
}

// prepare stamps identity, normalized date and execution bookkeeping on an
// instance about to be inserted.
func prepare(instance *domain.WorkoutInstance, now time.Time) error {
	if instance.UserID == primitive.NilObjectID || instance.Name == "" {
		return errors.New("instance requires userId and name")
	}
	instance.ID = primitive.NewObjectID()
	instance.ScheduledDate = domain.DateOnly(instance.ScheduledDate)
	instance.ScheduledAt = now
	instance.CreatedAt = now
	instance.UpdatedAt = now
	return nil
}

// Create inserts a single workout instance.
func (r *mongoInstanceRepository) Create(ctx context.Context, instance *domain.WorkoutInstance) (primitive.ObjectID, error) {
	if err := prepare(instance, time.Now().UTC()); err != nil {
		return primitive.NilObjectID, err
	}

	result, err := r.collection.InsertOne(ctx, instance)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted instance ID")
	}
	return insertedID, nil
}

// CreateMany inserts a batch of workout instances inside a single
// transaction, so a pattern materialization or copy is all-or-nothing.
// Requires MongoDB to run as a replica set (transactions are unavailable on
// standalone servers).
func (r *mongoInstanceRepository) CreateMany(ctx context.Context, instances []domain.WorkoutInstance) ([]primitive.ObjectID, error) {
	if len(instances) == 0 {
		return []primitive.ObjectID{}, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(instances))
	ids := make([]primitive.ObjectID, len(instances))
	for i := range instances {
		if err := prepare(&instances[i], now); err != nil {
			return nil, err
		}
		docs[i] = instances[i]
		ids[i] = instances[i].ID
	}

	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.collection.InsertMany(sc, docs, options.InsertMany().SetOrdered(true))
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetByID retrieves a single instance by its ID.
func (r *mongoInstanceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutInstance, error) {
	var instance domain.WorkoutInstance
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&instance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &instance, nil
}

// GetByDate retrieves every instance scheduled on a date across all users.
// Used by the daily digest job.
func (r *mongoInstanceRepository) GetByDate(ctx context.Context, date time.Time) ([]domain.WorkoutInstance, error) {
	filter := bson.M{"scheduledDate": domain.DateOnly(date)}
	return r.find(ctx, filter)
}

// GetByUserAndDate retrieves all instances scheduled on a single date,
// oldest created first so same-day ordering is stable.
func (r *mongoInstanceRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.WorkoutInstance, error) {
	filter := bson.M{
		"userId":        userID,
		"scheduledDate": domain.DateOnly(date),
	}
	return r.find(ctx, filter)
}

// GetByUserAndDateRange retrieves all instances with scheduledDate in
// [from, to] inclusive, ascending by date then creation order.
func (r *mongoInstanceRepository) GetByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutInstance, error) {
	filter := bson.M{
		"userId": userID,
		"scheduledDate": bson.M{
			"$gte": domain.DateOnly(from),
			"$lte": domain.DateOnly(to),
		},
	}
	return r.find(ctx, filter)
}

func (r *mongoInstanceRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutInstance, error) {
	var instances []domain.WorkoutInstance
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &instances); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Return empty slice if nothing is scheduled
	return instances, nil
}

// Delete removes an instance, enforcing ownership at the DB level.
func (r *mongoInstanceRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	if id == primitive.NilObjectID || userID == primitive.NilObjectID {
		return errors.New("instance ID and user ID are required for deletion")
	}

	filter := bson.M{
		"_id":    id,
		"userId": userID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureInstanceIndexes creates necessary indexes. Call during startup.
func EnsureInstanceIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main query pattern: calendar views by user and date
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "scheduledDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "patternId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
