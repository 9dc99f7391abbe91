package services

import (
	"context"
	"fmt"

	"go-timers/internal/standings/models"
	"go-timers/pkg/database"
	"go-timers/pkg/keys"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database operations for standings.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{
		collection: mongodb.Collection(models.StandingsCollection),
	}
}

func (r *Repository) CreateIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "pk", Value: 1}, {Key: "sk", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := r.collection.Indexes().CreateOne(ctx, indexModel)
	return err
}

// Upsert writes a standing, replacing any previous record for the same
// alliance ticker.
func (r *Repository) Upsert(ctx context.Context, standing *models.Standing) error {
	filter := bson.M{"pk": standing.PK, "sk": standing.SK}

	_, err := r.collection.ReplaceOne(ctx, filter, standing, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert standing: %w", err)
	}
	return nil
}

// Scan returns every alliance standing record.
func (r *Repository) Scan(ctx context.Context) ([]*models.Standing, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{
			"pk": keys.PartitionStanding,
			"sk": bson.M{"$regex": "^ALLIANCE#"},
		},
		options.Find().SetBatchSize(100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan standings: %w", err)
	}
	defer cursor.Close(ctx)

	var standings []*models.Standing
	for cursor.Next(ctx) {
		var standing models.Standing
		if err := cursor.Decode(&standing); err != nil {
			return nil, fmt.Errorf("failed to decode standing: %w", err)
		}
		standings = append(standings, &standing)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("standing scan aborted: %w", err)
	}

	return standings, nil
}

// Delete removes a standing by exact sort key, idempotently.
func (r *Repository) Delete(ctx context.Context, sortKey string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{
		"pk": keys.PartitionStanding,
		"sk": sortKey,
	})
	if err != nil {
		return fmt.Errorf("failed to delete standing: %w", err)
	}
	return nil
}
