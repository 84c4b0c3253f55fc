package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/server/handlers"
)

// Handlers groups everything the router wires. Webhook may be nil when the
// WhatsApp integration is disabled; its routes are then not registered.
type Handlers struct {
	Calculator *handlers.CalculatorHandler
	Batches    *handlers.BatchHandler
	Rates      *handlers.RatesHandler
	AI         *handlers.AIHandler
	Webhook    *handlers.WebhookHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.POST("/calculator", h.Calculator.Calculate)
		api.POST("/calculator/autofill", h.Calculator.AutoFill)

		api.POST("/batches", h.Batches.Create)
		api.GET("/batches", h.Batches.List)
		api.GET("/batches/:id", h.Batches.Get)
		api.POST("/batches/:id/entries", h.Batches.AddEntry)
		api.GET("/batches/:id/entries", h.Batches.ListEntries)
		api.POST("/batches/:id/transactions", h.Batches.AddTransaction)
		api.GET("/batches/:id/transactions", h.Batches.ListTransactions)
		api.GET("/batches/:id/metrics", h.Calculator.Metrics)

		api.GET("/rates", h.Rates.Latest)
		api.POST("/rates/refresh", h.Rates.Refresh)

		api.POST("/ai/draft", h.AI.Draft)
		api.POST("/ai/extract-rates", h.AI.ExtractRates)
	}

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Inbound)
		r.POST("/send-message", h.Webhook.Push)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
