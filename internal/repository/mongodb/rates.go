package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
)

// UpsertMarketRate writes a rate keyed by date+state+district so repeated
// sheet imports stay idempotent.
func (r *MongoRepository) UpsertMarketRate(ctx context.Context, rate models.MarketRate) error {
	filter := bson.M{
		"date":     rate.Date,
		"state":    rate.State,
		"district": rate.District,
	}
	update := bson.M{"$set": rate}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection(marketRatesColl).UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upsert market rate %s/%s: %w", rate.State, rate.District, err)
	}
	return nil
}

// ListLatestMarketRates returns the most recent rate documents, newest first.
func (r *MongoRepository) ListLatestMarketRates(ctx context.Context, limit int64) ([]models.MarketRate, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "state", Value: 1}, {Key: "district", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection(marketRatesColl).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find market rates: %w", err)
	}
	defer cursor.Close(ctx)

	var rates []models.MarketRate
	if err := cursor.All(ctx, &rates); err != nil {
		return nil, fmt.Errorf("decode market rates: %w", err)
	}
	return rates, nil
}
