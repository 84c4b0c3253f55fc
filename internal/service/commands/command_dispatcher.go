package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// ErrNoActiveBatch indicates the sender has no batch to record against.
var ErrNoActiveBatch = errors.New("no active batch for sender")

const dateFormat = "2006-01-02"

// Store is the persistence surface commands write through.
type Store interface {
	ListBatchesByFarmer(ctx context.Context, farmerID string) ([]models.Batch, error)
	AddDailyEntry(ctx context.Context, entry models.DailyEntry) error
	AddTransaction(ctx context.Context, txn models.Transaction) error
}

// ReportingAdapter provides the summaries appended to confirmations.
type ReportingAdapter interface {
	BatchSummary(ctx context.Context, batchID string) (string, error)
}

// RatesAdapter provides the current rate broadcast text.
type RatesAdapter interface {
	BroadcastSummary(ctx context.Context) (string, error)
}

// Dispatcher executes parsed commands against the sender's active batch.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface. WhatsApp senders are mapped
// to farmers by their wa_id; the newest batch is the active one.
type Service struct {
	store     Store
	reporting ReportingAdapter
	rates     RatesAdapter
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewService constructs a command dispatcher.
func NewService(store Store, reporting ReportingAdapter, rates RatesAdapter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		reporting: reporting,
		rates:     rates,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// HandleCommand converts the command to its record representation, persists
// it and returns the confirmation text to send back.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	now := s.now().UTC()

	s.logger.Debug("dispatching command",
		zap.String("command", string(cmd.Type)),
		zap.String("sender", sender),
		zap.Any("args", cmd.Args))

	switch cmd.Type {
	case models.CommandMortality:
		return s.handleMortality(ctx, cmd, sender, now)
	case models.CommandFeed:
		return s.handleFeed(ctx, cmd, sender, now)
	case models.CommandWeight:
		return s.handleWeight(ctx, cmd, sender, now)
	case models.CommandSale:
		return s.handleSale(ctx, cmd, sender, now)
	case models.CommandExpense:
		return s.handleExpense(ctx, cmd, sender, now)
	case models.CommandRates:
		if s.rates == nil {
			return "Market rates are not configured.", nil
		}
		return s.rates.BroadcastSummary(ctx)
	case models.CommandReport:
		batch, err := s.activeBatch(ctx, sender)
		if err != nil {
			return "", err
		}
		return s.reporting.BatchSummary(ctx, batch.ID)
	default:
		return "", ErrUnsupportedCommand
	}
}

func (s *Service) handleMortality(ctx context.Context, cmd models.Command, sender string, now time.Time) (string, error) {
	if len(cmd.Args) == 0 {
		return "", ErrInvalidArguments
	}
	qty, err := strconv.Atoi(cmd.Args[0])
	if err != nil || qty < 0 {
		return "", ErrInvalidArguments
	}

	batch, err := s.activeBatch(ctx, sender)
	if err != nil {
		return "", err
	}

	entry := models.DailyEntry{
		ID:        s.newID(),
		BatchID:   batch.ID,
		Date:      now,
		Mortality: qty,
	}
	if err := s.store.AddDailyEntry(ctx, entry); err != nil {
		return "", err
	}

	message := fmt.Sprintf("Mortality logged for %s: %d birds.", now.Format(dateFormat), qty)
	if len(cmd.Args) > 1 {
		message += fmt.Sprintf(" Reason: %s.", strings.Join(cmd.Args[1:], " "))
	}
	if summary := s.safeSummary(ctx, batch.ID); summary != "" {
		message += "\n" + summary
	}
	return message, nil
}

func (s *Service) handleFeed(ctx context.Context, cmd models.Command, sender string, now time.Time) (string, error) {
	if len(cmd.Args) == 0 {
		return "", ErrInvalidArguments
	}
	feedKg, err := strconv.ParseFloat(cmd.Args[0], 64)
	if err != nil || feedKg < 0 {
		return "", ErrInvalidArguments
	}

	batch, err := s.activeBatch(ctx, sender)
	if err != nil {
		return "", err
	}

	entry := models.DailyEntry{
		ID:             s.newID(),
		BatchID:        batch.ID,
		Date:           now,
		FeedConsumedKg: feedKg,
	}
	if err := s.store.AddDailyEntry(ctx, entry); err != nil {
		return "", err
	}

	message := fmt.Sprintf("Feed usage saved for %s: %.2f kg.", now.Format(dateFormat), feedKg)
	if summary := s.safeSummary(ctx, batch.ID); summary != "" {
		message += "\n" + summary
	}
	return message, nil
}

func (s *Service) handleWeight(ctx context.Context, cmd models.Command, sender string, now time.Time) (string, error) {
	if len(cmd.Args) == 0 {
		return "", ErrInvalidArguments
	}
	grams, err := strconv.ParseFloat(cmd.Args[0], 64)
	if err != nil || grams < 0 {
		return "", ErrInvalidArguments
	}

	batch, err := s.activeBatch(ctx, sender)
	if err != nil {
		return "", err
	}

	entry := models.DailyEntry{
		ID:             s.newID(),
		BatchID:        batch.ID,
		Date:           now,
		AverageWeightG: grams,
	}
	if err := s.store.AddDailyEntry(ctx, entry); err != nil {
		return "", err
	}

	return fmt.Sprintf("Average weight saved for %s: %.0f g per bird.", now.Format(dateFormat), grams), nil
}

func (s *Service) handleSale(ctx context.Context, cmd models.Command, sender string, now time.Time) (string, error) {
	if len(cmd.Args) < 3 {
		return "", ErrInvalidArguments
	}

	qty, err := strconv.Atoi(cmd.Args[0])
	if err != nil || qty < 0 {
		return "", ErrInvalidArguments
	}
	weightKg, err := strconv.ParseFloat(cmd.Args[1], 64)
	if err != nil || weightKg < 0 {
		return "", ErrInvalidArguments
	}
	amount, err := strconv.ParseFloat(cmd.Args[2], 64)
	if err != nil {
		return "", ErrInvalidArguments
	}

	batch, err := s.activeBatch(ctx, sender)
	if err != nil {
		return "", err
	}

	txn := models.Transaction{
		ID:            s.newID(),
		BatchID:       batch.ID,
		Date:          now,
		Kind:          models.KindSale,
		Description:   "Sale of birds",
		QuantitySold:  qty,
		TotalWeightKg: weightKg,
		Amount:        amount,
	}
	if err := s.store.AddTransaction(ctx, txn); err != nil {
		return "", err
	}

	message := fmt.Sprintf("Sale recorded: %d birds, %.1f kg, ₹%.2f.", qty, weightKg, amount)
	if summary := s.safeSummary(ctx, batch.ID); summary != "" {
		message += "\n" + summary
	}
	return message, nil
}

func (s *Service) handleExpense(ctx context.Context, cmd models.Command, sender string, now time.Time) (string, error) {
	if len(cmd.Args) < 2 {
		return "", ErrInvalidArguments
	}

	amount, err := strconv.ParseFloat(cmd.Args[0], 64)
	if err != nil {
		return "", ErrInvalidArguments
	}
	description := strings.Join(cmd.Args[1:], " ")

	batch, err := s.activeBatch(ctx, sender)
	if err != nil {
		return "", err
	}

	txn := models.Transaction{
		ID:          s.newID(),
		BatchID:     batch.ID,
		Date:        now,
		Kind:        models.KindExpense,
		Description: description,
		Amount:      amount,
	}
	if err := s.store.AddTransaction(ctx, txn); err != nil {
		return "", err
	}

	return fmt.Sprintf("Expense logged: %s ₹%.2f on %s.", description, amount, now.Format(dateFormat)), nil
}

// activeBatch resolves the sender's newest batch.
func (s *Service) activeBatch(ctx context.Context, sender string) (models.Batch, error) {
	batches, err := s.store.ListBatchesByFarmer(ctx, sender)
	if err != nil {
		return models.Batch{}, fmt.Errorf("resolve active batch: %w", err)
	}
	if len(batches) == 0 {
		return models.Batch{}, ErrNoActiveBatch
	}
	return batches[0], nil
}

func (s *Service) safeSummary(ctx context.Context, batchID string) string {
	if s.reporting == nil {
		return ""
	}

	summary, err := s.reporting.BatchSummary(ctx, batchID)
	if err != nil {
		s.logger.Debug("batch summary failed", zap.Error(err))
		return ""
	}
	return summary
}
