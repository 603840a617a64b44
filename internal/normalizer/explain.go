package normalizer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/quantatomai/normalize/internal/domain"
	"github.com/quantatomai/normalize/internal/units"
)

func magnitudeExplain(from, to domain.Scale, factor float64) *domain.MagnitudeExplain {
	direction := domain.DirectionNone
	switch {
	case units.ScaleFactor[to] < units.ScaleFactor[from]:
		direction = domain.DirectionDownscale
	case units.ScaleFactor[to] > units.ScaleFactor[from]:
		direction = domain.DirectionUpscale
	}
	return &domain.MagnitudeExplain{
		OriginalScale: from,
		TargetScale:   to,
		Factor:        factor,
		Direction:     direction,
		Description:   fmt.Sprintf("%s → %s (%s)", from, to, factorLabel(factor)),
	}
}

func periodicityExplain(from, to domain.TimeScale, factor float64) *domain.PeriodicityExplain {
	direction := domain.DirectionNone
	switch {
	case units.PerYear[to] > units.PerYear[from]:
		direction = domain.DirectionUpsample
	case units.PerYear[to] < units.PerYear[from]:
		direction = domain.DirectionDownsample
	}
	return &domain.PeriodicityExplain{
		Original:    from,
		Target:      to,
		Adjusted:    true,
		Factor:      factor,
		Direction:   direction,
		Description: fmt.Sprintf("%s → %s (%s)", from, to, factorLabel(factor)),
	}
}

func fxExplain(table *domain.FXTable, from, to string) *domain.FXExplain {
	rf, _ := table.Rate(from)
	rt, _ := table.Rate(to)
	// Displayed as units of the source currency per unit of the target.
	displayed := round6(rf / rt)

	asOf := table.AsOf
	if table.Dates != nil {
		if d, ok := table.Dates[from]; ok {
			asOf = d
		}
	}
	source := table.Source
	if source == "" {
		source = "live"
	}
	return &domain.FXExplain{
		Currency: from,
		Base:     table.Base,
		Rate:     displayed,
		AsOf:     asOf,
		Source:   source,
		SourceID: table.SourceID,
	}
}

// buildExplain assembles the full explain record from the pipeline state.
func buildExplain(st *state, originalUnit string) *domain.Explain {
	ex := &domain.Explain{
		FX:                 st.fx,
		Magnitude:          st.magnitude,
		Periodicity:        st.periodicity,
		ReportingFrequency: st.opts.Periodicity,
		Domain:             detectDomain(st),
		TargetSelection:    st.opts.TargetSelection,
		QualityWarnings:    st.warnings,
	}

	ex.Units = domain.UnitsExplain{
		OriginalUnit:       originalUnit,
		OriginalFullUnit:   renderUnit(st, sourceComponents(st), true),
		NormalizedUnit:     renderUnit(st, resultComponents(st), false),
		NormalizedFullUnit: renderUnit(st, resultComponents(st), true),
	}

	if st.fx != nil {
		ex.Currency = &domain.CurrencyComponent{Original: st.currency, Normalized: st.targetCur}
	} else if st.currency != "" {
		ex.Currency = &domain.CurrencyComponent{Original: st.currency, Normalized: st.currency}
	}
	if st.magnitude != nil {
		ex.Scale = &domain.ScaleComponent{Original: st.magnitude.OriginalScale, Normalized: st.magnitude.TargetScale}
	} else if st.scale != "" {
		ex.Scale = &domain.ScaleComponent{Original: st.scale, Normalized: st.scale}
	}
	if st.periodicity != nil && st.periodicity.Adjusted {
		ex.TimeScale = &domain.TimeScaleComponent{Original: st.periodicity.Original, Normalized: st.periodicity.Target}
	} else if st.timeScale != "" {
		ex.TimeScale = &domain.TimeScaleComponent{Original: st.timeScale, Normalized: st.timeScale}
	}

	if st.currency == "" && st.parsed.NormalizedLabel != "" {
		ex.BaseUnit = &domain.BaseUnitExplain{
			Normalized: st.parsed.NormalizedLabel,
			Category:   st.parsed.Category,
		}
	}

	ex.Conversion = conversionExplain(st, ex.Units)
	return ex
}

// conversionExplain lists applied steps in the logical processing order
// Scale, Currency, Time. Absent when nothing converted.
func conversionExplain(st *state, u domain.UnitsExplain) *domain.ConversionExplain {
	var steps []domain.ConversionStep
	total := 1.0

	if st.magnitude != nil {
		steps = append(steps, domain.ConversionStep{
			Stage:       domain.StageScale,
			From:        string(st.magnitude.OriginalScale),
			To:          string(st.magnitude.TargetScale),
			Factor:      st.magnitude.Factor,
			Description: st.magnitude.Description,
		})
		total *= st.magnitude.Factor
	}
	if st.fx != nil {
		steps = append(steps, domain.ConversionStep{
			Stage:       domain.StageCurrency,
			From:        st.fx.Currency,
			To:          st.targetCur,
			Factor:      st.fxFactor,
			Description: fmt.Sprintf("%s → %s (rate %s)", st.fx.Currency, st.targetCur, trimFloat(st.fx.Rate)),
		})
		total *= st.fxFactor
	}
	if st.periodicity != nil && st.periodicity.Adjusted {
		steps = append(steps, domain.ConversionStep{
			Stage:       domain.StageTime,
			From:        string(st.periodicity.Original),
			To:          string(st.periodicity.Target),
			Factor:      st.periodicity.Factor,
			Description: st.periodicity.Description,
		})
		total *= st.periodicity.Factor
	}

	if len(steps) == 0 {
		return nil
	}
	return &domain.ConversionExplain{
		Steps:       steps,
		TotalFactor: total,
		Summary: fmt.Sprintf("%s %s → %s %s",
			trimFloat(st.originalValue), u.OriginalFullUnit,
			trimFloat(st.value), u.NormalizedFullUnit),
	}
}

// factorLabel renders a multiplier as ×K for growth and ÷K for shrink.
func factorLabel(factor float64) string {
	if factor != 0 && factor < 1 {
		return "÷" + trimFloat(1/factor)
	}
	return "×" + trimFloat(factor)
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
