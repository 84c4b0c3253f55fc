package calculator

import (
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
)

// DailyEntryTotals is the reduction of one batch's daily entries.
type DailyEntryTotals struct {
	TotalMortality       int     `json:"totalMortality"`
	TotalFeedConsumedKg  float64 `json:"totalFeedConsumedInKg"`
	LatestAverageWeightG float64 `json:"latestAverageWeightInGrams"`
}

// AggregateDailyEntries reduces an ordered sequence of daily entries into
// cumulative totals. The caller guarantees the entries belong to one batch
// and are ordered most-recent-first; the head element supplies the latest
// average weight. No sorting happens here. An empty sequence yields zeros.
func AggregateDailyEntries(entries []models.DailyEntry) DailyEntryTotals {
	var totals DailyEntryTotals

	for _, entry := range entries {
		totals.TotalMortality += entry.Mortality
		totals.TotalFeedConsumedKg += entry.FeedConsumedKg
	}

	if len(entries) > 0 {
		totals.LatestAverageWeightG = entries[0].AverageWeightG
	}

	return totals
}

// SalesTotals is the reduction of one batch's sale transactions.
type SalesTotals struct {
	BirdsSold         int     `json:"birdsSold"`
	TotalWeightSoldKg float64 `json:"totalWeightSold"`
}

// AggregateSales reduces a batch's ledger into birds sold and weight sold.
// Classification goes through the transaction's own predicates so records
// with an explicit kind and legacy description-tagged records both count.
// Missing quantity or weight fields contribute zero.
func AggregateSales(transactions []models.Transaction) SalesTotals {
	var totals SalesTotals

	for _, txn := range transactions {
		if txn.IsBirdSale() {
			totals.BirdsSold += txn.QuantitySold
		}
		if txn.IsWeightSale() {
			totals.TotalWeightSoldKg += txn.TotalWeightKg
		}
	}

	return totals
}
