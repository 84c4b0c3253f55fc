package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
)

// AddDailyEntry inserts one day's record for a batch.
func (r *MongoRepository) AddDailyEntry(ctx context.Context, entry models.DailyEntry) error {
	if _, err := r.collection(dailyEntriesColl).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert daily entry: %w", err)
	}
	return nil
}

// ListEntriesByBatch returns a batch's daily entries sorted by date
// descending. The calculator's aggregation contract depends on this order:
// the first element must be the most recent entry.
func (r *MongoRepository) ListEntriesByBatch(ctx context.Context, batchID string) ([]models.DailyEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection(dailyEntriesColl).Find(ctx, bson.M{"batch_id": batchID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find entries for batch %s: %w", batchID, err)
	}
	defer cursor.Close(ctx)

	var entries []models.DailyEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode daily entries: %w", err)
	}
	return entries, nil
}

// AddTransaction appends one ledger entry for a batch.
func (r *MongoRepository) AddTransaction(ctx context.Context, txn models.Transaction) error {
	if _, err := r.collection(transactionsColl).InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListTransactionsByBatch returns a batch's ledger sorted by date descending.
func (r *MongoRepository) ListTransactionsByBatch(ctx context.Context, batchID string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection(transactionsColl).Find(ctx, bson.M{"batch_id": batchID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions for batch %s: %w", batchID, err)
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return txns, nil
}
