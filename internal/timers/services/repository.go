package services

import (
	"context"
	"errors"
	"fmt"

	"go-timers/internal/timers/models"
	"go-timers/pkg/database"
	"go-timers/pkg/keys"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrTimerExists is returned when a create hits an existing sort key.
	ErrTimerExists = errors.New("timer already exists")
	// ErrTimerNotFound is returned by conditional updates against a timer
	// that no longer exists.
	ErrTimerNotFound = errors.New("timer not found")
)

// Repository handles database operations for timers.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{
		collection: mongodb.Collection(models.TimersCollection),
	}
}

// CreateIndexes sets up the unique key index (the create-only precondition)
// and the TTL index that expires timers 24h after their start time.
func (r *Repository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pk", Value: 1}, {Key: "sk", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// Insert writes a timer with create-only semantics: the unique (pk, sk)
// index rejects a second record at the same key.
func (r *Repository) Insert(ctx context.Context, timer *models.Timer) error {
	_, err := r.collection.InsertOne(ctx, timer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrTimerExists
		}
		return fmt.Errorf("failed to insert timer: %w", err)
	}
	return nil
}

// Scan returns every record in the timer partition. The driver cursor pages
// through result batches transparently; order is the store's natural order,
// not chronological.
func (r *Repository) Scan(ctx context.Context) ([]*models.Timer, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"pk": keys.PartitionTimer},
		options.Find().SetBatchSize(100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan timers: %w", err)
	}
	defer cursor.Close(ctx)

	var timers []*models.Timer
	for cursor.Next(ctx) {
		var timer models.Timer
		if err := cursor.Decode(&timer); err != nil {
			return nil, fmt.Errorf("failed to decode timer: %w", err)
		}
		timers = append(timers, &timer)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("timer scan aborted: %w", err)
	}

	return timers, nil
}

// Delete removes a timer by exact sort key. Deleting an absent timer is
// not an error.
func (r *Repository) Delete(ctx context.Context, sortKey string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{
		"pk": keys.PartitionTimer,
		"sk": sortKey,
	})
	if err != nil {
		return fmt.Errorf("failed to delete timer: %w", err)
	}
	return nil
}

// SetNotifiedFlag sets a notification flag on an existing timer. The update
// never upserts: marking a deleted timer reports ErrTimerNotFound so a
// stale notification cycle cannot resurrect it.
func (r *Repository) SetNotifiedFlag(ctx context.Context, sortKey, field string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"pk": keys.PartitionTimer, "sk": sortKey},
		bson.M{"$set": bson.M{field: true}},
	)
	if err != nil {
		return fmt.Errorf("failed to update timer flag: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrTimerNotFound
	}
	return nil
}
