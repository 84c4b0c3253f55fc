package models

import "time"

// MarketRate is one broiler rate quotation for a market region. Rates are
// imported from the admin sheet or extracted from pasted bulletins and cached
// in MongoDB keyed by date+state+district.
type MarketRate struct {
	Date      time.Time `bson:"date" json:"date"`
	State     string    `bson:"state" json:"state"`
	District  string    `bson:"district" json:"district"`
	RatePerKg float64   `bson:"rate_per_kg" json:"ratePerKg"`
	Source    string    `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
