package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quantatomai/normalize/internal/aggregate"
	"github.com/quantatomai/normalize/internal/batch"
	"github.com/quantatomai/normalize/internal/domain"
	"github.com/quantatomai/normalize/internal/normalizer"
	"github.com/quantatomai/normalize/internal/outliers"
	"github.com/quantatomai/normalize/internal/targets"
)

type normalizeRequest struct {
	Value               float64                     `json:"value"`
	Unit                string                      `json:"unit"`
	Targets             domain.NormalizationTargets `json:"targets"`
	IndicatorName       string                      `json:"indicator_name,omitempty"`
	IndicatorType       domain.IndicatorType        `json:"indicator_type,omitempty"`
	TemporalAggregation domain.TemporalAggregation  `json:"temporal_aggregation,omitempty"`
	IsCumulative        bool                        `json:"is_cumulative,omitempty"`
	Currency            string                      `json:"currency_code,omitempty"`
	Scale               domain.Scale                `json:"scale,omitempty"`
	TimeScale           domain.TimeScale            `json:"time_scale,omitempty"`
	Periodicity         domain.TimeScale            `json:"periodicity,omitempty"`
	ForceConversions    bool                        `json:"force_conversions,omitempty"`
	// FXDate requests historical rates for that day (YYYY-MM-DD).
	FXDate string `json:"fx_date,omitempty"`
}

type normalizeResponse struct {
	Value    float64           `json:"value"`
	Unit     string            `json:"unit"`
	FullUnit string            `json:"full_unit"`
	Parsed   domain.ParsedUnit `json:"parsed"`
	Explain  *domain.Explain   `json:"explain"`
	Warnings []domain.Warning  `json:"warnings,omitempty"`
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req normalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	table, err := s.fxTable(r.Context(), req.Targets.ToCurrency, req.FXDate)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	res, err := normalizer.Normalize(req.Value, req.Unit, normalizer.Options{
		NormalizationTargets: req.Targets,
		FX:                   table,
		ExplicitCurrency:     req.Currency,
		ExplicitScale:        req.Scale,
		ExplicitTimeScale:    req.TimeScale,
		IndicatorName:        req.IndicatorName,
		IndicatorType:        req.IndicatorType,
		TemporalAggregation:  req.TemporalAggregation,
		IsCumulative:         req.IsCumulative,
		Periodicity:          req.Periodicity,
		ForceConversions:     req.ForceConversions,
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, domain.ErrMissingFXRate) || errors.Is(err, domain.ErrFXUnavailable) {
			status = http.StatusBadGateway
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, normalizeResponse{
		Value:    res.Value,
		Unit:     res.Unit,
		FullUnit: res.FullUnit,
		Parsed:   res.Parsed,
		Explain:  res.Explain,
		Warnings: res.Warnings,
	})
}

type batchRequest struct {
	Observations        []domain.Observation        `json:"observations"`
	Targets             domain.NormalizationTargets `json:"targets"`
	AutoTargets         bool                        `json:"auto_targets,omitempty"`
	DetectScaleOutliers bool                        `json:"detect_scale_outliers,omitempty"`
	ForceConversions    bool                        `json:"force_conversions,omitempty"`
	FXDate              string                      `json:"fx_date,omitempty"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Observations) == 0 {
		respondError(w, http.StatusBadRequest, "no observations")
		return
	}

	table, err := s.fxTable(r.Context(), req.Targets.ToCurrency, req.FXDate)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	result := s.batch.Process(r.Context(), req.Observations, batch.Options{
		Targets:             req.Targets,
		FX:                  table,
		AutoTargets:         req.AutoTargets,
		AutoTargetOptions:   targets.Options{Incumbent: &req.Targets},
		DetectScaleOutliers: req.DetectScaleOutliers,
		ScaleOutlierOptions: outliers.Options{IncludeDetails: true},
		ForceConversions:    req.ForceConversions,
		Workers:             s.workers,
	})
	respondJSON(w, http.StatusOK, result)
}

type aggregateRequest struct {
	Items          []aggregate.Input           `json:"items"`
	Method         aggregate.Method            `json:"method,omitempty"`
	WeightByValue  bool                        `json:"weight_by_value,omitempty"`
	NormalizeFirst bool                        `json:"normalize_first,omitempty"`
	Targets        domain.NormalizationTargets `json:"targets"`
	IndicatorType  domain.IndicatorType        `json:"indicator_type,omitempty"`
	FXDate         string                      `json:"fx_date,omitempty"`
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	var req aggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := aggregate.Options{
		Method:         req.Method,
		WeightByValue:  req.WeightByValue,
		NormalizeFirst: req.NormalizeFirst,
	}
	if req.NormalizeFirst {
		table, err := s.fxTable(r.Context(), req.Targets.ToCurrency, req.FXDate)
		if err != nil {
			respondError(w, http.StatusBadGateway, err.Error())
			return
		}
		opts.Normalize = normalizer.Options{
			NormalizationTargets: req.Targets,
			FX:                   table,
			IndicatorType:        req.IndicatorType,
		}
	}

	result, err := aggregate.Aggregate(req.Items, opts)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, domain.ErrAggregationEmpty) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	base := chi.URLParam(r, "base")
	date := r.URL.Query().Get("date")

	var table *domain.FXTable
	var err error
	if date != "" {
		table, err = s.rates.FetchHistorical(r.Context(), base, date)
	} else {
		table, err = s.rates.Fetch(r.Context(), base)
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, table)
}

// fxTable fetches the rate table when a currency target needs one. No
// target, no fetch.
func (s *Server) fxTable(ctx context.Context, toCurrency, date string) (*domain.FXTable, error) {
	if toCurrency == "" || s.rates == nil {
		return nil, nil
	}
	if date != "" {
		return s.rates.FetchHistorical(ctx, toCurrency, date)
	}
	return s.rates.Fetch(ctx, toCurrency)
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
