package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/config"
)

// Repository reads the admin-maintained market-rate spreadsheet.
type Repository interface {
	ReadRateRows(ctx context.Context) ([][]interface{}, error)
}

// RateSheetRepository implements Repository using the official Google Sheets API.
type RateSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewRateSheetRepository builds a Google Sheets backed rate source.
func NewRateSheetRepository(ctx context.Context, cfg config.RatesConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &RateSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.SheetRange,
		logger:        logger,
	}, nil
}

// ReadRateRows fetches the configured rate range. Rows come back as
// date, state, district, rate-per-kg columns in sheet order.
func (r *RateSheetRepository) ReadRateRows(ctx context.Context) ([][]interface{}, error) {
	if r.sheetRange == "" {
		return nil, fmt.Errorf("sheet range must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read rate range %s: %w", r.sheetRange, err)
	}

	r.logger.Debug("rate rows fetched", zap.Int("rows", len(resp.Values)))
	return resp.Values, nil
}
