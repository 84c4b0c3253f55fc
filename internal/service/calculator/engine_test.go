package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
)

func TestCalculateZeroInitialCountIsSafe(t *testing.T) {
	result := Calculate(models.CalculationInputs{
		InitialChickCount: 0,
		FinalChickCount:   500,
	})

	assert.Equal(t, 0.0, result.MortalityRate)
	assert.False(t, math.IsNaN(result.MortalityRate))
	assert.False(t, math.IsInf(result.MortalityRate, 0))
}

func TestCalculateZeroWeightGainSaturates(t *testing.T) {
	cases := []models.CalculationInputs{
		{InitialChickCount: 1000, FinalChickCount: 0, FeedCostPerBag: 1200, BagsOfFeedUsed: 40, AverageChickWeight: 2.0},
		{InitialChickCount: 1000, FinalChickCount: 950, FeedCostPerBag: 1200, BagsOfFeedUsed: 40, AverageChickWeight: 0},
	}

	for _, in := range cases {
		result := Calculate(in)
		assert.Equal(t, 0.0, result.FeedConversionRatio)
		assert.Equal(t, 0.0, result.CostPerKgOfChicken)
	}
}

func TestCalculateFeedCostIsExactProduct(t *testing.T) {
	cases := []struct {
		costPerBag float64
		bags       float64
	}{
		{1200, 40},
		{0, 10},
		{999.99, 0.5},
		{1, 1e6},
	}

	for _, tc := range cases {
		result := Calculate(models.CalculationInputs{FeedCostPerBag: tc.costPerBag, BagsOfFeedUsed: tc.bags})
		assert.Equal(t, tc.costPerBag*tc.bags, result.TotalFeedCost)
	}
}

func TestCalculateBagToKgConstant(t *testing.T) {
	// FCR = bags*50 / (final*avgWeight); with final*avgWeight = 1 the ratio
	// exposes the bag conversion directly.
	result := Calculate(models.CalculationInputs{
		FinalChickCount:    1,
		AverageChickWeight: 1,
		BagsOfFeedUsed:     3,
	})

	assert.Equal(t, 3*50.0, result.FeedConversionRatio)
}

func TestCalculateScenarioManual(t *testing.T) {
	result := Calculate(models.CalculationInputs{
		InitialChickCount:  1000,
		FinalChickCount:    950,
		FeedCostPerBag:     1200,
		BagsOfFeedUsed:     40,
		AverageChickWeight: 2.0,
	})

	assert.Equal(t, 5.0, result.MortalityRate)
	assert.Equal(t, 48000.0, result.TotalFeedCost)
	assert.Equal(t, 40*50.0/(950*2.0), result.FeedConversionRatio)
	assert.Equal(t, 48000.0/1900.0, result.CostPerKgOfChicken)
	assert.InDelta(t, 1.0526315789, result.FeedConversionRatio, 1e-9)
	assert.InDelta(t, 25.2631578947, result.CostPerKgOfChicken, 1e-9)
}

func TestCalculateScenarioDegenerate(t *testing.T) {
	result := Calculate(models.CalculationInputs{
		InitialChickCount:  0,
		FinalChickCount:    0,
		FeedCostPerBag:     500,
		BagsOfFeedUsed:     10,
		AverageChickWeight: 0,
	})

	assert.Equal(t, models.CalculationResult{
		MortalityRate:       0,
		TotalFeedCost:       5000,
		FeedConversionRatio: 0,
		CostPerKgOfChicken:  0,
	}, result)
}

func TestCalculateNegativeMortalityFlowsThrough(t *testing.T) {
	// The engine is total: a final count above the initial count is not an
	// error here, it just produces a negative rate. The boundary rejects it.
	result := Calculate(models.CalculationInputs{
		InitialChickCount: 100,
		FinalChickCount:   110,
	})

	assert.Equal(t, -10.0, result.MortalityRate)
}
