package calculator

import (
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
)

// BagWeightKg is the fixed weight of one feed bag. Historical records and
// every downstream consumer assume this exact conversion constant.
const BagWeightKg = 50.0

// Calculate computes batch performance metrics from the supplied inputs.
//
// The function is pure and total: it never errors and never panics. Zero
// denominators saturate the affected ratios to 0 instead of producing NaN
// or Inf. It performs no validation; negative inputs flow straight through
// the arithmetic (a finalChickCount above initialChickCount yields a
// negative mortality rate). Validation belongs to the boundary that builds
// the inputs.
func Calculate(in models.CalculationInputs) models.CalculationResult {
	var result models.CalculationResult

	if in.InitialChickCount > 0 {
		result.MortalityRate = (in.InitialChickCount - in.FinalChickCount) / in.InitialChickCount * 100
	}

	result.TotalFeedCost = in.FeedCostPerBag * in.BagsOfFeedUsed

	totalWeightGain := in.FinalChickCount * in.AverageChickWeight
	totalFeedUsedKg := in.BagsOfFeedUsed * BagWeightKg

	if totalWeightGain > 0 {
		result.FeedConversionRatio = totalFeedUsedKg / totalWeightGain
		result.CostPerKgOfChicken = result.TotalFeedCost / totalWeightGain
	}

	return result
}
