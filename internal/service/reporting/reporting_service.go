package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/calculator"
)

const dateLayout = "2006-01-02"

// Store is the read surface the reporting service needs.
type Store interface {
	GetBatch(ctx context.Context, batchID string) (models.Batch, error)
	ListBatchesByFarmer(ctx context.Context, farmerID string) ([]models.Batch, error)
	ListEntriesByBatch(ctx context.Context, batchID string) ([]models.DailyEntry, error)
	ListTransactionsByBatch(ctx context.Context, batchID string) ([]models.Transaction, error)
}

// Service exposes lightweight performance analytics for WhatsApp summaries
// and scheduled reports. All numbers come from the same aggregators and
// engine the calculator uses, so WhatsApp replies and API responses agree.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// BatchSummary produces a one-batch performance line: live birds, mortality
// rate and feed conversion. Feed cost is not known here (cost per bag lives
// outside the batch ledger) so cost metrics are omitted.
func (s *Service) BatchSummary(ctx context.Context, batchID string) (string, error) {
	batch, err := s.store.GetBatch(ctx, batchID)
	if err != nil {
		return "", fmt.Errorf("load batch: %w", err)
	}

	entries, err := s.store.ListEntriesByBatch(ctx, batchID)
	if err != nil {
		return "", fmt.Errorf("load entries: %w", err)
	}

	txns, err := s.store.ListTransactionsByBatch(ctx, batchID)
	if err != nil {
		return "", fmt.Errorf("load transactions: %w", err)
	}

	return s.summarize(batch, entries, txns), nil
}

// FarmerReport renders a report covering every batch of one farmer.
func (s *Service) FarmerReport(ctx context.Context, farmerID string, asOf time.Time) (string, error) {
	batches, err := s.store.ListBatchesByFarmer(ctx, farmerID)
	if err != nil {
		return "", fmt.Errorf("load batches: %w", err)
	}

	if len(batches) == 0 {
		return fmt.Sprintf("Report %s: no batches on record.", asOf.Format(dateLayout)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Flock report %s\n", asOf.Format(dateLayout))

	for _, batch := range batches {
		entries, err := s.store.ListEntriesByBatch(ctx, batch.ID)
		if err != nil {
			s.logger.Warn("skip batch in report", zap.String("batch_id", batch.ID), zap.Error(err))
			continue
		}
		txns, err := s.store.ListTransactionsByBatch(ctx, batch.ID)
		if err != nil {
			s.logger.Warn("skip batch in report", zap.String("batch_id", batch.ID), zap.Error(err))
			continue
		}

		b.WriteString(s.summarize(batch, entries, txns))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *Service) summarize(batch models.Batch, entries []models.DailyEntry, txns []models.Transaction) string {
	entryTotals := calculator.AggregateDailyEntries(entries)
	salesTotals := calculator.AggregateSales(txns)

	liveBirds := batch.InitialBirdCount - entryTotals.TotalMortality - salesTotals.BirdsSold

	result := calculator.Calculate(models.CalculationInputs{
		InitialChickCount:  float64(batch.InitialBirdCount),
		FinalChickCount:    float64(liveBirds),
		BagsOfFeedUsed:     entryTotals.TotalFeedConsumedKg / calculator.BagWeightKg,
		AverageChickWeight: entryTotals.LatestAverageWeightG / 1000,
	})

	line := fmt.Sprintf("%s: %d live of %d stocked, mortality %.2f%%, feed %.1f kg",
		batch.Name, liveBirds, batch.InitialBirdCount, result.MortalityRate, entryTotals.TotalFeedConsumedKg)

	if result.FeedConversionRatio > 0 {
		line += fmt.Sprintf(", FCR %.2f", result.FeedConversionRatio)
	}
	if salesTotals.BirdsSold > 0 {
		line += fmt.Sprintf(", %d birds sold (%.1f kg)", salesTotals.BirdsSold, salesTotals.TotalWeightSoldKg)
	}

	return line + "."
}
