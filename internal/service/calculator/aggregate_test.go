package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
)

func TestAggregateDailyEntriesEmpty(t *testing.T) {
	totals := AggregateDailyEntries(nil)

	assert.Equal(t, DailyEntryTotals{}, totals)
}

func TestAggregateDailyEntriesSingle(t *testing.T) {
	totals := AggregateDailyEntries([]models.DailyEntry{
		{Mortality: 4, FeedConsumedKg: 120.5, AverageWeightG: 900},
	})

	assert.Equal(t, 4, totals.TotalMortality)
	assert.Equal(t, 120.5, totals.TotalFeedConsumedKg)
	assert.Equal(t, 900.0, totals.LatestAverageWeightG)
}

func TestAggregateDailyEntriesSumsAndHeadWeight(t *testing.T) {
	// Most-recent-first ordering: element 0 supplies the latest weight.
	entries := []models.DailyEntry{
		{Mortality: 2, FeedConsumedKg: 150, AverageWeightG: 1800},
		{Mortality: 5, FeedConsumedKg: 140, AverageWeightG: 1700},
		{Mortality: 3, FeedConsumedKg: 130, AverageWeightG: 1600},
	}

	totals := AggregateDailyEntries(entries)

	assert.Equal(t, 10, totals.TotalMortality)
	assert.Equal(t, 420.0, totals.TotalFeedConsumedKg)
	assert.Equal(t, 1800.0, totals.LatestAverageWeightG)
}

func TestAggregateDailyEntriesAdditivity(t *testing.T) {
	a := []models.DailyEntry{
		{Mortality: 2, FeedConsumedKg: 100, AverageWeightG: 1500},
		{Mortality: 1, FeedConsumedKg: 90, AverageWeightG: 1400},
	}
	b := []models.DailyEntry{
		{Mortality: 7, FeedConsumedKg: 50, AverageWeightG: 800},
	}

	concat := AggregateDailyEntries(append(append([]models.DailyEntry{}, a...), b...))
	ta := AggregateDailyEntries(a)
	tb := AggregateDailyEntries(b)

	assert.Equal(t, ta.TotalMortality+tb.TotalMortality, concat.TotalMortality)
	assert.Equal(t, ta.TotalFeedConsumedKg+tb.TotalFeedConsumedKg, concat.TotalFeedConsumedKg)

	// Latest weight is order-dependent: reversing the concatenation picks a
	// different head element.
	reversed := AggregateDailyEntries(append(append([]models.DailyEntry{}, b...), a...))
	assert.Equal(t, 1500.0, concat.LatestAverageWeightG)
	assert.Equal(t, 800.0, reversed.LatestAverageWeightG)
	assert.NotEqual(t, concat.LatestAverageWeightG, reversed.LatestAverageWeightG)
}

func TestAggregateSalesEmpty(t *testing.T) {
	totals := AggregateSales(nil)

	assert.Equal(t, SalesTotals{}, totals)
}

func TestAggregateSalesKindClassification(t *testing.T) {
	txns := []models.Transaction{
		{Kind: models.KindSale, QuantitySold: 100, TotalWeightKg: 180, Amount: 20000},
		{Kind: models.KindSale, QuantitySold: 50, TotalWeightKg: 95, Amount: 10000},
		{Kind: models.KindExpense, Description: "Sale of birds feed supplement", QuantitySold: 9, TotalWeightKg: 9, Amount: -500},
		{Kind: models.KindPayment, Amount: 5000},
	}

	totals := AggregateSales(txns)

	// An explicit kind always wins over description text.
	assert.Equal(t, 150, totals.BirdsSold)
	assert.Equal(t, 275.0, totals.TotalWeightSoldKg)
}

func TestAggregateSalesLegacyDescriptionClassification(t *testing.T) {
	txns := []models.Transaction{
		{Description: "Sale of birds to trader", QuantitySold: 80, TotalWeightKg: 150},
		{Description: "sale of manure", TotalWeightKg: 20},
		{Description: "SALE OF BIRDS", QuantitySold: 40, TotalWeightKg: 70}, // wrong case, not a bird sale
		{Description: "Feed purchase", QuantitySold: 5, TotalWeightKg: 10},
	}

	totals := AggregateSales(txns)

	assert.Equal(t, 80, totals.BirdsSold)
	// Weight matching is case-insensitive on "sale", so the first three count.
	assert.Equal(t, 240.0, totals.TotalWeightSoldKg)
}

func TestAggregateSalesMissingFieldsAreZero(t *testing.T) {
	totals := AggregateSales([]models.Transaction{
		{Kind: models.KindSale, Amount: 12000},
	})

	assert.Equal(t, 0, totals.BirdsSold)
	assert.Equal(t, 0.0, totals.TotalWeightSoldKg)
}
