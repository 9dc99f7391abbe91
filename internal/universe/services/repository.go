package services

import (
	"context"
	"fmt"

	"go-timers/internal/universe/models"
	"go-timers/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database operations for the system reference data.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{
		collection: mongodb.Collection(models.SystemsCollection),
	}
}

// CreateIndexes sets up the primary key index and the secondary index on
// the external system id.
func (r *Repository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pk", Value: 1}, {Key: "sk", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "gsi1pk", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// FindByKey returns all records at the given primary sort key. More than
// two are never needed: the caller only distinguishes zero, one and many.
func (r *Repository) FindByKey(ctx context.Context, sortKey string) ([]*models.System, error) {
	return r.find(ctx, bson.M{"pk": "SYSTEM", "sk": sortKey})
}

// FindBySecondaryKey returns all records at the given secondary index key.
func (r *Repository) FindBySecondaryKey(ctx context.Context, indexKey string) ([]*models.System, error) {
	return r.find(ctx, bson.M{"gsi1pk": indexKey})
}

func (r *Repository) find(ctx context.Context, filter bson.M) ([]*models.System, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetLimit(2))
	if err != nil {
		return nil, fmt.Errorf("failed to query systems: %w", err)
	}
	defer cursor.Close(ctx)

	var systems []*models.System
	if err := cursor.All(ctx, &systems); err != nil {
		return nil, fmt.Errorf("failed to decode systems: %w", err)
	}
	return systems, nil
}

// BulkUpsert replaces the records for the given systems in one batch.
func (r *Repository) BulkUpsert(ctx context.Context, systems []*models.System) error {
	if len(systems) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(systems))
	for _, system := range systems {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"pk": system.PK, "sk": system.SK}).
			SetReplacement(system).
			SetUpsert(true))
	}

	_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to bulk upsert systems: %w", err)
	}
	return nil
}
