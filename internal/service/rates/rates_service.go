package rates

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
	sheetsrepo "github.com/DKUMARGUPTA/poultrymitra-backend/internal/repository/sheets"
)

const (
	dateLayout       = "2006-01-02"
	defaultRateLimit = 50
	sourceSheet      = "sheet"
)

// RateStore is the persistence surface the rates service needs.
type RateStore interface {
	UpsertMarketRate(ctx context.Context, rate models.MarketRate) error
	ListLatestMarketRates(ctx context.Context, limit int64) ([]models.MarketRate, error)
}

// Service imports broiler rates from the admin sheet into MongoDB and serves
// reads from the cache. A nil sheet repository disables refresh but reads
// still work.
type Service struct {
	sheet  sheetsrepo.Repository
	store  RateStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a rates service instance.
func NewService(sheet sheetsrepo.Repository, store RateStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sheet: sheet, store: store, logger: logger, now: time.Now}
}

// Refresh pulls the sheet and upserts every parseable row. Rows with bad
// dates or rates are skipped and logged, not fatal; the count of imported
// rows is returned.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	if s.sheet == nil {
		return 0, fmt.Errorf("rate sheet source not configured")
	}

	rows, err := s.sheet.ReadRateRows(ctx)
	if err != nil {
		return 0, fmt.Errorf("load rate rows: %w", err)
	}

	imported := 0
	for _, row := range rows {
		rate, err := parseRateRow(row)
		if err != nil {
			s.logger.Debug("skip rate row", zap.Any("row", row), zap.Error(err))
			continue
		}
		rate.Source = sourceSheet
		rate.CreatedAt = s.now().UTC()

		if err := s.store.UpsertMarketRate(ctx, rate); err != nil {
			return imported, fmt.Errorf("store rate: %w", err)
		}
		imported++
	}

	s.logger.Info("market rates refreshed", zap.Int("imported", imported), zap.Int("rows", len(rows)))
	return imported, nil
}

// SaveExtracted persists rates produced by the AI bulletin extractor.
func (s *Service) SaveExtracted(ctx context.Context, rates []models.MarketRate, source string) (int, error) {
	saved := 0
	for _, rate := range rates {
		if rate.RatePerKg <= 0 || rate.State == "" {
			s.logger.Debug("skip extracted rate", zap.Any("rate", rate))
			continue
		}
		if rate.Date.IsZero() {
			rate.Date = truncateToDay(s.now().UTC())
		}
		rate.Source = source
		rate.CreatedAt = s.now().UTC()

		if err := s.store.UpsertMarketRate(ctx, rate); err != nil {
			return saved, fmt.Errorf("store extracted rate: %w", err)
		}
		saved++
	}
	return saved, nil
}

// Latest returns the most recent cached rates.
func (s *Service) Latest(ctx context.Context) ([]models.MarketRate, error) {
	rates, err := s.store.ListLatestMarketRates(ctx, defaultRateLimit)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	return rates, nil
}

// BroadcastSummary formats the latest rates into a WhatsApp-ready message.
func (s *Service) BroadcastSummary(ctx context.Context) (string, error) {
	rates, err := s.Latest(ctx)
	if err != nil {
		return "", err
	}

	if len(rates) == 0 {
		return "No broiler rates available yet.", nil
	}

	var b strings.Builder
	day := rates[0].Date
	fmt.Fprintf(&b, "Broiler rates %s:\n", day.Format(dateLayout))
	for _, rate := range rates {
		if !rate.Date.Equal(day) {
			break
		}
		region := rate.State
		if rate.District != "" {
			region += " / " + rate.District
		}
		fmt.Fprintf(&b, "- %s: ₹%.2f per kg\n", region, rate.RatePerKg)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func parseRateRow(row []interface{}) (models.MarketRate, error) {
	if len(row) < 4 {
		return models.MarketRate{}, fmt.Errorf("row needs date, state, district, rate")
	}

	date, err := parseDate(row[0])
	if err != nil {
		return models.MarketRate{}, err
	}

	rate, err := parseFloat(row[3])
	if err != nil {
		return models.MarketRate{}, err
	}
	if rate <= 0 {
		return models.MarketRate{}, fmt.Errorf("rate must be positive, got %v", rate)
	}

	return models.MarketRate{
		Date:      date,
		State:     strings.TrimSpace(fmt.Sprint(row[1])),
		District:  strings.TrimSpace(fmt.Sprint(row[2])),
		RatePerKg: rate,
	}, nil
}

func parseDate(value interface{}) (time.Time, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}

func parseFloat(value interface{}) (float64, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(str, 64)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
