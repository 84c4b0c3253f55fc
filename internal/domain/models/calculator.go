package models

// CalculationInputs is the value object the metrics engine consumes. Callers
// are responsible for non-negativity; the engine itself stays total.
type CalculationInputs struct {
	InitialChickCount  float64 `json:"initialChickCount"`
	FinalChickCount    float64 `json:"finalChickCount"`
	FeedCostPerBag     float64 `json:"feedCostPerBag"`
	BagsOfFeedUsed     float64 `json:"bagsOfFeedUsed"`
	AverageChickWeight float64 `json:"averageChickWeight"` // kg per bird
}

// CalculationResult is the engine's output. Pure function of the inputs,
// recomputed on every call, never persisted.
type CalculationResult struct {
	MortalityRate       float64 `json:"mortalityRate"`       // percent
	TotalFeedCost       float64 `json:"totalFeedCost"`       // currency
	FeedConversionRatio float64 `json:"feedConversionRatio"` // kg feed per kg bird
	CostPerKgOfChicken  float64 `json:"costPerKgOfChicken"`  // currency per kg
}
