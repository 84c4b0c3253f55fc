package calculator

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
)

// ErrInvalidInput indicates a calculation input failed boundary validation.
var ErrInvalidInput = errors.New("invalid calculation input")

// ErrStaleRequest indicates a newer auto-fill request for the same session
// was already admitted; the caller should discard this response.
var ErrStaleRequest = errors.New("stale auto-fill request")

// BatchReader fetches batch records.
type BatchReader interface {
	GetBatch(ctx context.Context, batchID string) (models.Batch, error)
}

// EntryReader fetches a batch's daily entries, most-recent-first.
type EntryReader interface {
	ListEntriesByBatch(ctx context.Context, batchID string) ([]models.DailyEntry, error)
}

// TransactionReader fetches a batch's ledger.
type TransactionReader interface {
	ListTransactionsByBatch(ctx context.Context, batchID string) ([]models.Transaction, error)
}

// Service binds manual input or an auto-filled batch selection to the
// metrics engine. The engine itself stays total; every non-negativity and
// numeric check lives here at the boundary.
type Service struct {
	batches BatchReader
	entries EntryReader
	txns    TransactionReader
	guard   *SequenceGuard
	logger  *zap.Logger
}

// NewService wires a calculator service instance.
func NewService(batches BatchReader, entries EntryReader, txns TransactionReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		batches: batches,
		entries: entries,
		txns:    txns,
		guard:   NewSequenceGuard(),
		logger:  logger,
	}
}

// ValidateInputs rejects inputs the engine must never see: negative values
// and non-finite numbers. The engine would compute through them silently,
// so the gate sits here.
func ValidateInputs(in models.CalculationInputs) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"initialChickCount", in.InitialChickCount},
		{"finalChickCount", in.FinalChickCount},
		{"feedCostPerBag", in.FeedCostPerBag},
		{"bagsOfFeedUsed", in.BagsOfFeedUsed},
		{"averageChickWeight", in.AverageChickWeight},
	}

	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not a number", ErrInvalidInput, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, f.name)
		}
	}

	return nil
}

// Manual validates user-typed inputs and runs the engine. Usable without any
// batch context, which is how the anonymous public calculator works.
func (s *Service) Manual(in models.CalculationInputs) (models.CalculationResult, error) {
	if err := ValidateInputs(in); err != nil {
		return models.CalculationResult{}, err
	}
	return Calculate(in), nil
}

// AutoFill derives calculation inputs from a batch's recorded daily entries
// and sale transactions. Feed cost per bag is not derivable from the ledger
// joined here and stays caller-supplied.
func (s *Service) AutoFill(ctx context.Context, batchID string, feedCostPerBag float64) (models.CalculationInputs, error) {
	if math.IsNaN(feedCostPerBag) || math.IsInf(feedCostPerBag, 0) || feedCostPerBag < 0 {
		return models.CalculationInputs{}, fmt.Errorf("%w: feedCostPerBag must be a non-negative number", ErrInvalidInput)
	}

	batch, err := s.batches.GetBatch(ctx, batchID)
	if err != nil {
		return models.CalculationInputs{}, fmt.Errorf("load batch %s: %w", batchID, err)
	}

	entries, err := s.entries.ListEntriesByBatch(ctx, batchID)
	if err != nil {
		return models.CalculationInputs{}, fmt.Errorf("load entries for batch %s: %w", batchID, err)
	}

	txns, err := s.txns.ListTransactionsByBatch(ctx, batchID)
	if err != nil {
		return models.CalculationInputs{}, fmt.Errorf("load transactions for batch %s: %w", batchID, err)
	}

	entryTotals := AggregateDailyEntries(entries)
	salesTotals := AggregateSales(txns)

	inputs := models.CalculationInputs{
		InitialChickCount:  float64(batch.InitialBirdCount),
		FinalChickCount:    float64(batch.InitialBirdCount - entryTotals.TotalMortality - salesTotals.BirdsSold),
		FeedCostPerBag:     feedCostPerBag,
		BagsOfFeedUsed:     round2(entryTotals.TotalFeedConsumedKg / BagWeightKg),
		AverageChickWeight: entryTotals.LatestAverageWeightG / 1000,
	}

	s.logger.Debug("auto-filled calculator inputs",
		zap.String("batch_id", batchID),
		zap.Int("total_mortality", entryTotals.TotalMortality),
		zap.Int("birds_sold", salesTotals.BirdsSold),
		zap.Float64("bags_of_feed", inputs.BagsOfFeedUsed))

	return inputs, nil
}

// CalculateForBatch runs auto-fill plus the engine in one step. The session
// and seq parameters feed the stale-request guard; pass empty/zero to skip
// it. Derived inputs still pass through boundary validation, so a ledger
// implying more birds sold than stocked is rejected rather than producing a
// negative mortality rate.
func (s *Service) CalculateForBatch(ctx context.Context, batchID string, feedCostPerBag float64, session string, seq uint64) (models.CalculationInputs, models.CalculationResult, error) {
	inputs, err := s.AutoFill(ctx, batchID, feedCostPerBag)
	if err != nil {
		return models.CalculationInputs{}, models.CalculationResult{}, err
	}

	if err := ValidateInputs(inputs); err != nil {
		return models.CalculationInputs{}, models.CalculationResult{}, err
	}

	// Admit after the reads complete: a request that finished last but was
	// issued earlier loses to the one that already reported.
	if !s.guard.Admit(session, seq) {
		return models.CalculationInputs{}, models.CalculationResult{}, fmt.Errorf("%w: session %s seq %d", ErrStaleRequest, session, seq)
	}

	return inputs, Calculate(inputs), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
