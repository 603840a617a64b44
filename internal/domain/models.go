// Package domain provides the core data model for the indicator
// normalization engine: observations, parsed units, FX tables, targets,
// explain records and the shared error taxonomy.
package domain

import "fmt"

// Observation is a single numeric data point as submitted by a caller.
// The Explicit* fields override whatever the unit parser extracts.
type Observation struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name,omitempty"`
	Value               float64             `json:"value"`
	Unit                string              `json:"unit"`
	IndicatorType       IndicatorType       `json:"indicator_type,omitempty"`
	TemporalAggregation TemporalAggregation `json:"temporal_aggregation,omitempty"`
	// Periodicity is the dataset's reporting frequency. It is a release
	// cadence hint, not the measurement time basis, and never drives a
	// time conversion on its own.
	Periodicity       TimeScale         `json:"periodicity,omitempty"`
	ExplicitCurrency  string            `json:"currency_code,omitempty"`
	ExplicitScale     Scale             `json:"scale,omitempty"`
	ExplicitTimeScale TimeScale         `json:"time_scale,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// ParsedUnit is the structured interpretation of a free-text unit string.
type ParsedUnit struct {
	Currency        string       `json:"currency,omitempty"` // uppercase ISO-4217
	Scale           Scale        `json:"scale,omitempty"`
	TimeScale       TimeScale    `json:"time_scale,omitempty"`
	Category        UnitCategory `json:"category"`
	NormalizedLabel string       `json:"normalized_label"`
	IsComposite     bool         `json:"is_composite,omitempty"`
}

// NormalizationTargets are the desired output dimensions. Empty fields
// leave the corresponding dimension untouched.
type NormalizationTargets struct {
	ToCurrency  string    `json:"to_currency,omitempty"`
	ToMagnitude Scale     `json:"to_magnitude,omitempty"`
	ToTimeScale TimeScale `json:"to_time_scale,omitempty"`
}

// FXTable holds exchange rates against a base currency. Rates are
// units-per-base: rates["XOF"]=558.16 means 558.16 XOF per USD when the
// base is USD. The base's own rate is implicitly 1.
type FXTable struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
	Dates map[string]string  `json:"dates,omitempty"`
	AsOf  string             `json:"as_of,omitempty"`
	// Source is "live" when fetched from an upstream API, "fallback" when
	// served from a stale cache entry or a caller-supplied fallback table.
	Source   string `json:"source,omitempty"`
	SourceID string `json:"source_id,omitempty"`
}

// Rate returns the units-per-base rate for code.
func (t *FXTable) Rate(code string) (float64, bool) {
	if code == t.Base {
		return 1, true
	}
	r, ok := t.Rates[code]
	return r, ok
}

// Cross converts one unit of from into to. With units-per-base rates this
// is rate(to)/rate(from): XOF→USD with rates[XOF]=558.16 yields 1/558.16.
func (t *FXTable) Cross(from, to string) (float64, error) {
	rf, ok := t.Rate(from)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingFXRate, from)
	}
	rt, ok := t.Rate(to)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingFXRate, to)
	}
	if rf <= 0 || rt <= 0 {
		return 0, fmt.Errorf("%w: non-positive rate for %s/%s", ErrInvalidFXRate, from, to)
	}
	return rt / rf, nil
}

// NormalizedObservation is the engine's output for one observation.
type NormalizedObservation struct {
	ID                 string   `json:"id"`
	OriginalValue      float64  `json:"original_value"`
	OriginalUnit       string   `json:"original_unit"`
	NormalizedValue    float64  `json:"normalized_value"`
	NormalizedUnit     string   `json:"normalized_unit"`
	NormalizedFullUnit string   `json:"normalized_full_unit"`
	Explain            *Explain `json:"explain,omitempty"`
	QualityScore       float64  `json:"quality_score,omitempty"`
}

// Warning is a soft, non-fatal issue attached to an explain record.
type Warning struct {
	Type     string          `json:"type"`
	Severity string          `json:"severity"`
	Message  string          `json:"message"`
	Details  *OutlierDetails `json:"details,omitempty"`
}

// Warning severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Warning types.
const (
	WarningScaleOutlier       = "scale-outlier"
	WarningBlockedTime        = "blocked-time-conversion"
	WarningMissingTimeBasis   = "missing-time-basis"
	WarningCurrencySuppressed = "currency-suppressed"
	WarningUnknownUnit        = "unknown-unit"
	WarningMissingFXDate      = "missing-fx-date"
)

// OutlierDetails carries the evidence behind a scale-outlier warning.
type OutlierDetails struct {
	Value               float64     `json:"value"`
	Magnitude           int         `json:"magnitude"`
	DominantMagnitude   int         `json:"dominant_magnitude"`
	MagnitudeDifference int         `json:"magnitude_difference"`
	Distribution        map[int]int `json:"distribution"`
}
