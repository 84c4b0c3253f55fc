package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/config"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/repository/mongodb"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/repository/sheets"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/scheduler"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/server/handlers"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/server/router"
	calculatorsvc "github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/calculator"
	commandsvc "github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/commands"
	ratessvc "github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/rates"
	reportingsvc "github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/reporting"
	whatsappsvc "github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/whatsapp"
	"github.com/DKUMARGUPTA/poultrymitra-backend/pkg/clients/gemini"
	whatsappclient "github.com/DKUMARGUPTA/poultrymitra-backend/pkg/clients/whatsapp"
	"github.com/DKUMARGUPTA/poultrymitra-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Debug))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var rateSheet sheets.Repository
	if cfg.RatesSheetEnabled() {
		rateSheet, err = sheets.NewRateSheetRepository(context.Background(), cfg.Rates, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init rate sheet repository", zap.Error(err))
		}
	} else {
		baseLogger.Warn("rate sheet not configured, sheet imports disabled")
	}

	var aiClient gemini.Client
	if cfg.AIEnabled() {
		aiClient = gemini.NewClient(cfg.AI.GeminiKey, cfg.AI.GeminiModel)
		baseLogger.Info("gemini ai client enabled", zap.String("model", cfg.AI.GeminiModel))
	} else {
		baseLogger.Warn("gemini api key missing, ai tools disabled")
	}

	calculatorSvc := calculatorsvc.NewService(mongoRepo, mongoRepo, mongoRepo, baseLogger.Named("svc.calculator"))
	reportingSvc := reportingsvc.NewService(mongoRepo, baseLogger.Named("svc.reporting"))
	ratesSvc := ratessvc.NewService(rateSheet, mongoRepo, baseLogger.Named("svc.rates"))
	commandDispatcher := commandsvc.NewService(mongoRepo, reportingSvc, ratesSvc, baseLogger.Named("svc.commands"))

	var messagingSvc whatsappsvc.MessagingService
	var webhookHandler *handlers.WebhookHandler
	if cfg.WhatsAppEnabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc = whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, aiClient, baseLogger.Named("svc.whatsapp"))
		webhookHandler = handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
	} else {
		baseLogger.Warn("whatsapp token missing, messaging disabled")
	}

	engine := router.New(router.Handlers{
		Calculator: handlers.NewCalculatorHandler(calculatorSvc, baseLogger.Named("handlers.calculator")),
		Batches:    handlers.NewBatchHandler(mongoRepo, baseLogger.Named("handlers.batches")),
		Rates:      handlers.NewRatesHandler(ratesSvc, baseLogger.Named("handlers.rates")),
		AI:         handlers.NewAIHandler(aiClient, ratesSvc, baseLogger.Named("handlers.ai")),
		Webhook:    webhookHandler,
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, ratesSvc, reportingSvc, messagingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
