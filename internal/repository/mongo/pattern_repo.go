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

const patternCollectionName = "recurring_patterns"

// mongoPatternRepository implements repository.PatternRepository
type mongoPatternRepository struct {
	collection *mongo.Collection
}

// NewMongoPatternRepository creates a new RecurringPattern repository.
func NewMongoPatternRepository(db *mongo.Database) repository.PatternRepository {
	return &mongoPatternRepository{
		collection: db.Collection(patternCollectionName),
	}
}

// Create inserts a new recurring pattern.
func (r *mongoPatternRepository) Create(ctx context.Context, pattern *domain.RecurringPattern) (primitive.ObjectID, error) {
	if pattern.UserID == primitive.NilObjectID || pattern.TemplateID == primitive.NilObjectID || pattern.Name == "" {
		return primitive.NilObjectID, errors.New("pattern requires userId, templateId, and name")
	}
	pattern.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	pattern.CreatedAt = now
	pattern.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, pattern)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted pattern ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single pattern by its ID.
func (r *mongoPatternRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RecurringPattern, error) {
	var pattern domain.RecurringPattern
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&pattern)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &pattern, nil
}

// GetByUserID retrieves all patterns owned by a user, newest first.
func (r *mongoPatternRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.RecurringPattern, error) {
	var patterns []domain.RecurringPattern
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &patterns); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// Deactivate clears the active flag. Instances already generated from the
// pattern are untouched; a pattern is never re-expanded after creation.
func (r *mongoPatternRepository) Deactivate(ctx context.Context, id, userID primitive.ObjectID) error {
	if id == primitive.NilObjectID || userID == primitive.NilObjectID {
		return errors.New("pattern ID and user ID are required")
	}

	filter := bson.M{
		"_id":    id,
		"userId": userID,
	}
	update := bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now().UTC()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePatternIndexes creates necessary indexes. Call during startup.
func EnsurePatternIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "active", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
