package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
)

// ErrNotFound indicates the requested document does not exist.
var ErrNotFound = errors.New("document not found")

const (
	batchesColl      = "batches"
	dailyEntriesColl = "daily_entries"
	transactionsColl = "transactions"
	marketRatesColl  = "market_rates"
)

// Repository defines the persistence operations backing batches, their
// ledgers and market rates.
type Repository interface {
	CreateBatch(ctx context.Context, batch models.Batch) error
	GetBatch(ctx context.Context, batchID string) (models.Batch, error)
	ListBatchesByFarmer(ctx context.Context, farmerID string) ([]models.Batch, error)

	AddDailyEntry(ctx context.Context, entry models.DailyEntry) error
	ListEntriesByBatch(ctx context.Context, batchID string) ([]models.DailyEntry, error)

	AddTransaction(ctx context.Context, txn models.Transaction) error
	ListTransactionsByBatch(ctx context.Context, batchID string) ([]models.Transaction, error)

	UpsertMarketRate(ctx context.Context, rate models.MarketRate) error
	ListLatestMarketRates(ctx context.Context, limit int64) ([]models.MarketRate, error)
}

// MongoRepository implements Repository on top of the official Mongo driver.
type MongoRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoRepository connects, pings and returns a repository instance.
func NewMongoRepository(ctx context.Context, uri string, dbName string) (*MongoRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoRepository{client: client, dbName: dbName}, nil
}

func (r *MongoRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Close closes the MongoDB connection.
func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
