package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/domain/models"
	"github.com/DKUMARGUPTA/poultrymitra-backend/internal/service/calculator"
)

type calcFakeStore struct {
	batch   models.Batch
	entries []models.DailyEntry
	txns    []models.Transaction
}

func (f *calcFakeStore) GetBatch(context.Context, string) (models.Batch, error) {
	return f.batch, nil
}

func (f *calcFakeStore) ListEntriesByBatch(context.Context, string) ([]models.DailyEntry, error) {
	return f.entries, nil
}

func (f *calcFakeStore) ListTransactionsByBatch(context.Context, string) ([]models.Transaction, error) {
	return f.txns, nil
}

func newCalcRouter(store *calcFakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := calculator.NewService(store, store, store, nil)
	h := NewCalculatorHandler(svc, nil)

	r := gin.New()
	r.POST("/api/calculator", h.Calculate)
	r.POST("/api/calculator/autofill", h.AutoFill)
	r.GET("/api/batches/:id/metrics", h.Metrics)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCalculateEndpoint(t *testing.T) {
	r := newCalcRouter(&calcFakeStore{})

	w := postJSON(t, r, "/api/calculator", gin.H{
		"initialChickCount":  1000,
		"finalChickCount":    950,
		"feedCostPerBag":     1200,
		"bagsOfFeedUsed":     40,
		"averageChickWeight": 2.0,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result models.CalculationResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5.0, resp.Result.MortalityRate)
	assert.Equal(t, 48000.0, resp.Result.TotalFeedCost)
}

func TestCalculateEndpointAllowsZeroes(t *testing.T) {
	r := newCalcRouter(&calcFakeStore{})

	w := postJSON(t, r, "/api/calculator", gin.H{
		"initialChickCount":  0,
		"finalChickCount":    0,
		"feedCostPerBag":     500,
		"bagsOfFeedUsed":     10,
		"averageChickWeight": 0,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Result models.CalculationResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.Result.MortalityRate)
	assert.Equal(t, 5000.0, resp.Result.TotalFeedCost)
	assert.Equal(t, 0.0, resp.Result.FeedConversionRatio)
}

func TestCalculateEndpointRejectsNegative(t *testing.T) {
	r := newCalcRouter(&calcFakeStore{})

	w := postJSON(t, r, "/api/calculator", gin.H{
		"initialChickCount":  -1,
		"finalChickCount":    0,
		"feedCostPerBag":     0,
		"bagsOfFeedUsed":     0,
		"averageChickWeight": 0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateEndpointRejectsMissingField(t *testing.T) {
	r := newCalcRouter(&calcFakeStore{})

	w := postJSON(t, r, "/api/calculator", gin.H{
		"initialChickCount": 1000,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAutoFillEndpoint(t *testing.T) {
	store := &calcFakeStore{
		batch: models.Batch{ID: "b1", InitialBirdCount: 1000},
		entries: []models.DailyEntry{
			{Mortality: 30, FeedConsumedKg: 2500, AverageWeightG: 1800},
		},
		txns: []models.Transaction{
			{Kind: models.KindSale, QuantitySold: 100},
		},
	}
	r := newCalcRouter(store)

	w := postJSON(t, r, "/api/calculator/autofill", gin.H{
		"batchId":        "b1",
		"feedCostPerBag": 1200,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Inputs models.CalculationInputs `json:"inputs"`
		Result models.CalculationResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 870.0, resp.Inputs.FinalChickCount)
	assert.Equal(t, 50.0, resp.Inputs.BagsOfFeedUsed)
	assert.Equal(t, 1.8, resp.Inputs.AverageChickWeight)
	assert.Equal(t, 13.0, resp.Result.MortalityRate)
}

func TestBatchMetricsEndpoint(t *testing.T) {
	store := &calcFakeStore{
		batch: models.Batch{ID: "b1", InitialBirdCount: 1000},
		entries: []models.DailyEntry{
			{Mortality: 30, FeedConsumedKg: 2500, AverageWeightG: 1800},
		},
		txns: []models.Transaction{
			{Kind: models.KindSale, QuantitySold: 100},
		},
	}
	r := newCalcRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/batches/b1/metrics?feedCostPerBag=1200", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Inputs models.CalculationInputs `json:"inputs"`
		Result models.CalculationResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 870.0, resp.Inputs.FinalChickCount)
	assert.Equal(t, 50.0, resp.Inputs.BagsOfFeedUsed)
	assert.Equal(t, 13.0, resp.Result.MortalityRate)
}

func TestBatchMetricsEndpointRejectsBadQuery(t *testing.T) {
	r := newCalcRouter(&calcFakeStore{batch: models.Batch{ID: "b1", InitialBirdCount: 100}})

	for _, query := range []string{"feedCostPerBag=-5", "feedCostPerBag=abc", "seq=-1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/batches/b1/metrics?"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestBatchMetricsEndpointStaleSequence(t *testing.T) {
	r := newCalcRouter(&calcFakeStore{batch: models.Batch{ID: "b1", InitialBirdCount: 100}})

	getMetrics := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/batches/b1/metrics?"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, getMetrics("session=s1&seq=2").Code)

	w := getMetrics("session=s1&seq=1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "stale")
}

func TestAutoFillEndpointStaleSequence(t *testing.T) {
	store := &calcFakeStore{batch: models.Batch{ID: "b1", InitialBirdCount: 100}}
	r := newCalcRouter(store)

	w := postJSON(t, r, "/api/calculator/autofill", gin.H{
		"batchId": "b1", "session": "s1", "seq": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/calculator/autofill", gin.H{
		"batchId": "b1", "session": "s1", "seq": 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "stale")
}
