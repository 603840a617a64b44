// Package normalizer applies magnitude, time and currency conversions to
// observations under the indicator-type rule matrix, and produces the
// explain record describing every transformation.
package normalizer

import (
	"fmt"
	"strings"

	"github.com/quantatomai/normalize/internal/domain"
	"github.com/quantatomai/normalize/internal/rules"
	"github.com/quantatomai/normalize/internal/units"
)

// Options carries the targets and metadata for one normalize call. Every
// field is explicit; there is no global configuration.
type Options struct {
	domain.NormalizationTargets

	// FX is the rate table used for currency conversion. The normalizer
	// never fetches it; the caller (or the batch layer) supplies a
	// snapshot shared for the whole batch.
	FX *domain.FXTable

	// Explicit components override whatever the parser extracts.
	ExplicitCurrency  string
	ExplicitScale     domain.Scale
	ExplicitTimeScale domain.TimeScale

	IndicatorName       string
	IndicatorType       domain.IndicatorType
	TemporalAggregation domain.TemporalAggregation
	// IsCumulative is the legacy flag equivalent to
	// TemporalAggregation=period-cumulative.
	IsCumulative bool

	// Periodicity is the dataset release cadence. It is surfaced in the
	// explain record but never drives a conversion.
	Periodicity domain.TimeScale

	// ForceConversions turns blocked conversions into hard errors
	// instead of warnings.
	ForceConversions bool

	// TargetSelection, when targets came from auto-target voting, is
	// echoed into the explain record.
	TargetSelection *domain.TargetSelectionExplain
}

// Result is the outcome of one normalize call. Warnings are duplicated in
// Explain.QualityWarnings for consumers that only keep the explain record.
type Result struct {
	Value    float64
	Unit     string
	FullUnit string
	Parsed   domain.ParsedUnit
	Explain  *domain.Explain
	Warnings []domain.Warning
}

// state carries the resolved inputs and applied steps through the
// pipeline into the explain builder.
type state struct {
	opts   Options
	parsed domain.ParsedUnit

	originalValue float64
	value         float64

	indicatorType domain.IndicatorType
	aggregation   domain.TemporalAggregation
	typeRules     rules.Rules

	currency    string // effective source currency, "" when none/suppressed
	scale       domain.Scale
	timeScale   domain.TimeScale // effective source time basis, "" when unknown
	targetCur   string
	targetScale domain.Scale
	targetTime  domain.TimeScale

	perCapita bool
	stockLike bool // population-style counts: no time basis, unit "units"

	magnitude   *domain.MagnitudeExplain
	periodicity *domain.PeriodicityExplain
	fx          *domain.FXExplain
	fxFactor    float64

	warnings []domain.Warning
}

// Normalize converts value, reported in unitText, toward the targets in
// opts. It is fail-soft: blocked or impossible conversions produce
// warnings and leave the affected dimension unchanged. The only hard
// failures are a missing FX rate and, under ForceConversions, a blocked
// conversion.
func Normalize(value float64, unitText string, opts Options) (Result, error) {
	st := &state{
		opts:          opts,
		parsed:        units.Parse(unitText),
		originalValue: value,
		value:         value,
	}

	st.resolveInputs()

	if err := st.applyMagnitude(); err != nil {
		return Result{}, err
	}
	if err := st.applyTime(); err != nil {
		return Result{}, err
	}
	if err := st.applyCurrency(); err != nil {
		return Result{}, err
	}

	explain := buildExplain(st, unitText)
	return Result{
		Value:    st.value,
		Unit:     explain.Units.NormalizedUnit,
		FullUnit: explain.Units.NormalizedFullUnit,
		Parsed:   st.parsed,
		Explain:  explain,
		Warnings: st.warnings,
	}, nil
}

// resolveInputs computes the effective source components: explicit wins
// over parsed wins over inferred.
func (st *state) resolveInputs() {
	opts := st.opts

	st.indicatorType = opts.IndicatorType
	if st.indicatorType == "" {
		st.indicatorType = domain.IndicatorOther
	}
	st.aggregation = opts.TemporalAggregation
	if st.aggregation == "" && opts.IsCumulative {
		st.aggregation = domain.AggPeriodCumulative
	}
	st.typeRules = rules.ForType(st.indicatorType)

	st.currency = strings.ToUpper(opts.ExplicitCurrency)
	if st.currency == "" {
		st.currency = st.parsed.Currency
	}
	if st.currency != "" && !units.KnownCurrency(st.currency) {
		st.currency = ""
	}

	st.scale = opts.ExplicitScale
	if st.scale == "" {
		st.scale = st.parsed.Scale
	}
	if st.scale == "" {
		st.scale = domain.ScaleOnes
	}

	// The time basis comes from the unit itself, or an explicit field.
	// Release periodicity is never promoted to a measurement basis.
	if st.typeRules.AllowTimeDimension {
		st.timeScale = st.parsed.TimeScale
		if st.timeScale == "" {
			st.timeScale = opts.ExplicitTimeScale
		}
	}

	st.targetCur = strings.ToUpper(opts.ToCurrency)
	st.targetScale = opts.ToMagnitude
	st.targetTime = opts.ToTimeScale

	name := units.NormalizeText(opts.IndicatorName)
	st.perCapita = units.PerCapita(opts.IndicatorName) || units.PerCapita(st.parsed.NormalizedLabel)

	isCountType := st.indicatorType == domain.IndicatorCount || st.indicatorType == domain.IndicatorVolume
	if isCountType {
		// Counts are never money, even when the label embeds an ISO code
		// ("USD Thousand" used as a count).
		if st.currency != "" {
			st.warn(domain.WarningCurrencySuppressed, domain.SeverityInfo,
				fmt.Sprintf("currency %s ignored for %s indicator", st.currency, st.indicatorType))
		}
		st.currency = ""
		st.targetCur = ""

		if units.StockLikeCount(name) || st.parsed.Category == domain.CategoryPopulation {
			st.stockLike = true
			st.timeScale = ""
			st.targetTime = ""
		}
	}
	if st.parsed.Category == domain.CategoryPopulation {
		st.stockLike = true
	}

	if st.perCapita {
		// Per-capita measures stay in ones; they never pick up a
		// magnitude label.
		st.targetScale = domain.ScaleOnes
	}

	if st.parsed.Category == domain.CategoryUnknown && strings.TrimSpace(st.parsed.NormalizedLabel) != "" {
		st.warn(domain.WarningUnknownUnit, domain.SeverityInfo,
			fmt.Sprintf("unit %q not recognized; value passed through", st.parsed.NormalizedLabel))
	}
}

// applyMagnitude runs the magnitude step. Physical, energy and
// temperature measures keep their reported magnitude.
func (st *state) applyMagnitude() error {
	if !st.typeRules.AllowMagnitude {
		if st.targetScale != "" && st.targetScale != st.scale && st.opts.ForceConversions {
			return fmt.Errorf("%w: magnitude conversion not allowed for %s", domain.ErrUnsupportedConversion, st.indicatorType)
		}
		return nil
	}
	switch st.parsed.Category {
	case domain.CategoryPhysical, domain.CategoryEnergy, domain.CategoryTemperature:
		return nil
	}
	if st.targetScale == "" || st.targetScale == st.scale {
		return nil
	}

	factor := units.MagnitudeFactor(st.scale, st.targetScale)
	st.value *= factor
	st.magnitude = magnitudeExplain(st.scale, st.targetScale, factor)
	return nil
}

// applyTime runs the time-basis step under the temporal-aggregation
// policy.
func (st *state) applyTime() error {
	if st.targetTime == "" {
		return nil
	}
	if st.stockLike {
		return nil
	}

	policy := rules.TimePolicyFor(st.indicatorType, st.aggregation)
	if !policy.Allowed {
		if st.opts.ForceConversions {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedConversion, policy.Reason)
		}
		st.periodicity = &domain.PeriodicityExplain{
			Original: st.timeScale,
			Target:   st.targetTime,
			Adjusted: false,
			Reason:   policy.Reason,
		}
		// not-applicable is a plain no-op; the blocked aggregations warn.
		if st.aggregation != domain.AggNotApplicable && st.typeRules.AllowTimeDimension {
			st.warn(domain.WarningBlockedTime, domain.SeverityWarning, policy.Reason)
		}
		return nil
	}

	if st.timeScale == "" {
		if st.opts.ForceConversions {
			return fmt.Errorf("%w for %s", domain.ErrInvalidTimeBasis, st.indicatorType)
		}
		st.warn(domain.WarningMissingTimeBasis, domain.SeverityWarning,
			"no source time scale; time conversion skipped")
		return nil
	}
	if st.timeScale == st.targetTime {
		return nil
	}

	factor := units.TimeFactor(st.timeScale, st.targetTime)
	st.value *= factor
	st.periodicity = periodicityExplain(st.timeScale, st.targetTime, factor)
	return nil
}

// applyCurrency runs the FX step last so the reported rate is a true spot
// rate on a same-magnitude quantity.
func (st *state) applyCurrency() error {
	if !st.typeRules.AllowCurrency {
		if st.targetCur != "" && st.currency != "" && st.targetCur != st.currency && st.opts.ForceConversions {
			return fmt.Errorf("%w: currency conversion not allowed for %s", domain.ErrUnsupportedConversion, st.indicatorType)
		}
		return nil
	}
	if st.currency == "" || st.targetCur == "" || !units.KnownCurrency(st.targetCur) || st.currency == st.targetCur {
		return nil
	}

	if st.opts.FX == nil {
		return fmt.Errorf("%w: no FX table for %s→%s", domain.ErrMissingFXRate, st.currency, st.targetCur)
	}
	factor, err := st.opts.FX.Cross(st.currency, st.targetCur)
	if err != nil {
		return err
	}

	st.value *= factor
	st.fxFactor = factor
	st.fx = fxExplain(st.opts.FX, st.currency, st.targetCur)
	return nil
}

func (st *state) warn(typ, severity, message string) {
	st.warnings = append(st.warnings, domain.Warning{Type: typ, Severity: severity, Message: message})
}
