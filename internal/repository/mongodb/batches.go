package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
)

// CreateBatch inserts a new batch document.
func (r *MongoRepository) CreateBatch(ctx context.Context, batch models.Batch) error {
	if _, err := r.collection(batchesColl).InsertOne(ctx, batch); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetBatch fetches a single batch by its ID.
func (r *MongoRepository) GetBatch(ctx context.Context, batchID string) (models.Batch, error) {
	var batch models.Batch
	err := r.collection(batchesColl).FindOne(ctx, bson.M{"_id": batchID}).Decode(&batch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Batch{}, fmt.Errorf("batch %s: %w", batchID, ErrNotFound)
	}
	if err != nil {
		return models.Batch{}, fmt.Errorf("find batch %s: %w", batchID, err)
	}
	return batch, nil
}

// ListBatchesByFarmer returns a farmer's batches, newest first.
func (r *MongoRepository) ListBatchesByFarmer(ctx context.Context, farmerID string) ([]models.Batch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	cursor, err := r.collection(batchesColl).Find(ctx, bson.M{"farmer_id": farmerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find batches for farmer %s: %w", farmerID, err)
	}
	defer cursor.Close(ctx)

	var batches []models.Batch
	if err := cursor.All(ctx, &batches); err != nil {
		return nil, fmt.Errorf("decode batches: %w", err)
	}
	return batches, nil
}
