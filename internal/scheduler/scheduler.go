package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/config"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/rates"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/reporting"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/whatsapp"
)

// Scheduler manages the recurring jobs: daily rate refresh + broadcast and
// the weekly flock report. Messaging may be nil; jobs then only refresh data.
type Scheduler struct {
	cron         *cron.Cron
	ratesSvc     *rates.Service
	reportingSvc *reporting.Service
	messagingSvc whatsapp.MessagingService
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance in the configured timezone.
func NewScheduler(cfg config.Config, ratesSvc *rates.Service, reportingSvc *reporting.Service, messagingSvc whatsapp.MessagingService, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, using local", zap.String("tz", cfg.Reporting.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		ratesSvc:     ratesSvc,
		reportingSvc: reportingSvc,
		messagingSvc: messagingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.Reporting.RateCronSchedule, s.refreshAndBroadcastRates); err != nil {
		s.logger.Error("failed to schedule rate refresh", zap.Error(err))
	}

	if _, err := s.cron.AddFunc(s.cfg.Reporting.ReportCronSchedule, s.sendWeeklyReport); err != nil {
		s.logger.Error("failed to schedule weekly report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) refreshAndBroadcastRates() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if s.cfg.RatesSheetEnabled() {
		if _, err := s.ratesSvc.Refresh(ctx); err != nil {
			s.logger.Error("scheduled rate refresh failed", zap.Error(err))
		}
	}

	if s.messagingSvc == nil || s.cfg.WhatsApp.FarmerGroupID == "" {
		return
	}

	summary, err := s.ratesSvc.BroadcastSummary(ctx)
	if err != nil {
		s.logger.Error("failed to build rate broadcast", zap.Error(err))
		return
	}

	req := models.OutboundMessageRequest{
		To:      s.cfg.WhatsApp.FarmerGroupID,
		Message: summary,
	}
	if err := s.messagingSvc.SendOutbound(ctx, req); err != nil {
		s.logger.Error("failed to send rate broadcast", zap.Error(err))
	} else {
		s.logger.Info("rate broadcast sent")
	}
}

func (s *Scheduler) sendWeeklyReport() {
	if s.messagingSvc == nil || s.cfg.WhatsApp.OwnerID == "" {
		return
	}

	s.logger.Info("generating weekly report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reportingSvc.FarmerReport(ctx, s.cfg.WhatsApp.OwnerID, time.Now())
	if err != nil {
		s.logger.Error("failed to generate weekly report", zap.Error(err))
		return
	}

	req := models.OutboundMessageRequest{
		To:      s.cfg.WhatsApp.OwnerID,
		Message: report,
	}
	if err := s.messagingSvc.SendOutbound(ctx, req); err != nil {
		s.logger.Error("failed to send weekly report", zap.Error(err))
	} else {
		s.logger.Info("weekly report sent successfully")
	}
}
