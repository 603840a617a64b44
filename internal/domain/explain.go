package domain

// Explain is the machine-readable description of every transformation the
// normalizer applied (or deliberately skipped) for one observation.
type Explain struct {
	FX          *FXExplain          `json:"fx,omitempty"`
	Magnitude   *MagnitudeExplain   `json:"magnitude,omitempty"`
	Periodicity *PeriodicityExplain `json:"periodicity,omitempty"`
	Units       UnitsExplain        `json:"units"`

	// Flat component fields mirroring the blocks above for easy consumer
	// access.
	Currency  *CurrencyComponent  `json:"currency,omitempty"`
	Scale     *ScaleComponent     `json:"scale,omitempty"`
	TimeScale *TimeScaleComponent `json:"time_scale,omitempty"`

	// ReportingFrequency is the dataset release cadence, distinct from
	// the conversion-basis time scale.
	ReportingFrequency TimeScale `json:"reporting_frequency,omitempty"`

	BaseUnit        *BaseUnitExplain        `json:"base_unit,omitempty"`
	Domain          Domain                  `json:"domain,omitempty"`
	Conversion      *ConversionExplain      `json:"conversion,omitempty"`
	TargetSelection *TargetSelectionExplain `json:"target_selection,omitempty"`
	QualityWarnings []Warning               `json:"quality_warnings,omitempty"`
}

// FXExplain is present only when a currency conversion actually ran.
// Rate is rounded to 6 decimal places for display; internal computation
// keeps full precision.
type FXExplain struct {
	Currency string  `json:"currency"`
	Base     string  `json:"base"`
	Rate     float64 `json:"rate"`
	AsOf     string  `json:"as_of,omitempty"`
	Source   string  `json:"source"` // "live" or "fallback"
	SourceID string  `json:"source_id,omitempty"`
}

// Magnitude conversion directions.
const (
	DirectionUpscale   = "upscale"
	DirectionDownscale = "downscale"
	DirectionNone      = "none"
)

// MagnitudeExplain is present only when the magnitude changed.
// Factor is the multiplier applied to the value.
type MagnitudeExplain struct {
	OriginalScale Scale   `json:"original_scale"`
	TargetScale   Scale   `json:"target_scale"`
	Factor        float64 `json:"factor"`
	Direction     string  `json:"direction"`
	Description   string  `json:"description"`
}

// Time conversion directions.
const (
	DirectionUpsample   = "upsample"
	DirectionDownsample = "downsample"
)

// PeriodicityExplain describes the time-basis adjustment, including the
// case where the rule matrix blocked it (Adjusted=false with Reason).
type PeriodicityExplain struct {
	Original    TimeScale `json:"original,omitempty"`
	Target      TimeScale `json:"target,omitempty"`
	Adjusted    bool      `json:"adjusted"`
	Factor      float64   `json:"factor,omitempty"`
	Direction   string    `json:"direction,omitempty"`
	Description string    `json:"description,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// UnitsExplain carries the short and full unit strings before and after.
type UnitsExplain struct {
	OriginalUnit       string `json:"original_unit"`
	NormalizedUnit     string `json:"normalized_unit"`
	OriginalFullUnit   string `json:"original_full_unit"`
	NormalizedFullUnit string `json:"normalized_full_unit"`
}

// CurrencyComponent mirrors the FX block as a flat from/to pair.
type CurrencyComponent struct {
	Original   string `json:"original,omitempty"`
	Normalized string `json:"normalized,omitempty"`
}

// ScaleComponent mirrors the magnitude block as a flat from/to pair.
type ScaleComponent struct {
	Original   Scale `json:"original,omitempty"`
	Normalized Scale `json:"normalized,omitempty"`
}

// TimeScaleComponent mirrors the periodicity block as a flat from/to pair.
type TimeScaleComponent struct {
	Original   TimeScale `json:"original,omitempty"`
	Normalized TimeScale `json:"normalized,omitempty"`
}

// BaseUnitExplain identifies the underlying measure for non-currency units.
type BaseUnitExplain struct {
	Normalized string       `json:"normalized"`
	Category   UnitCategory `json:"category"`
}

// Conversion step stages, in logical processing order.
const (
	StageScale    = "scale"
	StageCurrency = "currency"
	StageTime     = "time"
)

// ConversionStep is one applied transformation. Factor is the multiplier
// applied to the value at that step.
type ConversionStep struct {
	Stage       string  `json:"stage"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Factor      float64 `json:"factor"`
	Description string  `json:"description"`
}

// ConversionExplain summarizes all applied steps. TotalFactor is the
// product of the step factors and equals normalized/original up to
// numeric tolerance. Absent when no conversion ran.
type ConversionExplain struct {
	Steps       []ConversionStep `json:"steps"`
	Summary     string           `json:"summary"`
	TotalFactor float64          `json:"total_factor"`
}

// TargetSelectionExplain records where the normalization targets came
// from when auto-target selection chose them.
type TargetSelectionExplain struct {
	Source string `json:"source"` // "caller" or "auto"
	Reason string `json:"reason,omitempty"`
}
