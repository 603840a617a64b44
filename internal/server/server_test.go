package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantatomai/normalize/internal/batch"
	"github.com/quantatomai/normalize/internal/domain"
	"github.com/quantatomai/normalize/pkg/logger"
)

// stubRates serves a fixed table without network I/O.
type stubRates struct {
	table *domain.FXTable
	err   error

	lastBase string
	lastDate string
}

func (s *stubRates) Fetch(ctx context.Context, base string) (*domain.FXTable, error) {
	s.lastBase = base
	return s.table, s.err
}

func (s *stubRates) FetchHistorical(ctx context.Context, base, date string) (*domain.FXTable, error) {
	s.lastBase, s.lastDate = base, date
	return s.table, s.err
}

func newTestServer(rates RateSource) *Server {
	log := logger.New(logger.Config{Level: "error"})
	return New(Config{
		Log:   log,
		Port:  0,
		Rates: rates,
		Batch: batch.NewProcessor(log),
	})
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestHandleNormalize(t *testing.T) {
	rates := &stubRates{table: &domain.FXTable{
		Base:  "USD",
		Rates: map[string]float64{"XOF": 558.16},
	}}
	s := newTestServer(rates)

	rec := doJSON(t, s, http.MethodPost, "/api/normalize", `{
		"value": -482.58,
		"unit": "XOF Billions",
		"indicator_type": "balance",
		"targets": {"to_currency": "USD", "to_magnitude": "millions"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp normalizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, -864.59, resp.Value, 0.01)
	assert.Equal(t, "USD Million", resp.FullUnit)
	assert.Equal(t, "USD", rates.lastBase)
}

func TestHandleNormalize_BadBody(t *testing.T) {
	rec := doJSON(t, newTestServer(nil), http.MethodPost, "/api/normalize", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleNormalize_MissingRate(t *testing.T) {
	rates := &stubRates{table: &domain.FXTable{Base: "USD", Rates: map[string]float64{}}}
	rec := doJSON(t, newTestServer(rates), http.MethodPost, "/api/normalize", `{
		"value": 1,
		"unit": "GBP Millions",
		"indicator_type": "balance",
		"targets": {"to_currency": "USD"}
	}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleNormalize_HistoricalDate(t *testing.T) {
	rates := &stubRates{table: &domain.FXTable{
		Base:  "USD",
		Rates: map[string]float64{"EUR": 0.95},
		AsOf:  "2025-01-15",
	}}
	s := newTestServer(rates)

	rec := doJSON(t, s, http.MethodPost, "/api/normalize", `{
		"value": 10,
		"unit": "EUR Millions",
		"indicator_type": "balance",
		"targets": {"to_currency": "USD"},
		"fx_date": "2025-01-15"
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-01-15", rates.lastDate)
}

func TestHandleBatch(t *testing.T) {
	s := newTestServer(&stubRates{table: &domain.FXTable{
		Base:  "USD",
		Rates: map[string]float64{"EUR": 0.92},
	}})

	rec := doJSON(t, s, http.MethodPost, "/api/batch", `{
		"observations": [
			{"id": "a", "name": "GDP", "value": 1, "unit": "USD Millions", "indicator_type": "flow"},
			{"id": "b", "name": "GDP", "value": 2, "unit": "USD Millions", "indicator_type": "flow"}
		],
		"targets": {"to_currency": "USD", "to_magnitude": "millions"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result batch.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Successful, 2)
	assert.Equal(t, 2, result.Stats.Succeeded)
}

func TestHandleBatch_Empty(t *testing.T) {
	rec := doJSON(t, newTestServer(nil), http.MethodPost, "/api/batch", `{"observations": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAggregate(t *testing.T) {
	rec := doJSON(t, newTestServer(nil), http.MethodPost, "/api/aggregate", `{
		"items": [
			{"value": 1, "unit": "USD Millions"},
			{"value": 3, "unit": "USD Millions"}
		],
		"method": "mean"
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"value":2`)
}

func TestHandleAggregate_MixedUnits(t *testing.T) {
	rec := doJSON(t, newTestServer(nil), http.MethodPost, "/api/aggregate", `{
		"items": [
			{"value": 1, "unit": "USD Millions"},
			{"value": 3, "unit": "EUR Millions"}
		],
		"method": "sum"
	}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleRates(t *testing.T) {
	rates := &stubRates{table: &domain.FXTable{
		Base:  "USD",
		Rates: map[string]float64{"EUR": 0.92},
	}}
	s := newTestServer(rates)

	rec := doJSON(t, s, http.MethodGet, "/api/rates/USD", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "USD", rates.lastBase)

	rec = doJSON(t, s, http.MethodGet, "/api/rates/USD?date=2025-01-15", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-01-15", rates.lastDate)
}
