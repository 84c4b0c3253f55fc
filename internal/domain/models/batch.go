package models

import "time"

// Batch represents one flock cycle tracked from initial stocking to sale-out.
type Batch struct {
	ID               string    `bson:"_id" json:"id"`
	FarmerID         string    `bson:"farmer_id" json:"farmerId"`
	Name             string    `bson:"name" json:"name"`
	StartDate        time.Time `bson:"start_date" json:"startDate"`
	InitialBirdCount int       `bson:"initial_bird_count" json:"initialBirdCount"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
}

// DailyEntry captures one day's recorded metrics for a batch. Lookups return
// entries most-recent-first; the aggregator relies on that ordering for the
// latest-weight field.
type DailyEntry struct {
	ID             string    `bson:"_id" json:"id"`
	BatchID        string    `bson:"batch_id" json:"batchId"`
	Date           time.Time `bson:"date" json:"date"`
	Mortality      int       `bson:"mortality" json:"mortality"`
	FeedConsumedKg float64   `bson:"feed_consumed_kg" json:"feedConsumedInKg"`
	AverageWeightG float64   `bson:"average_weight_g" json:"averageWeightInGrams"`
}
