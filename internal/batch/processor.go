// Package batch drives observations through the parse → normalize →
// explain pipeline with a bounded worker pool, then annotates the results
// with auto-target selections and scale-outlier warnings.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quantatomai/normalize/internal/domain"
	"github.com/quantatomai/normalize/internal/normalizer"
	"github.com/quantatomai/normalize/internal/outliers"
	"github.com/quantatomai/normalize/internal/targets"
	"github.com/quantatomai/normalize/pkg/formulas"
)

// DefaultWorkers bounds batch concurrency when the caller does not.
const DefaultWorkers = 8

// Processing stages recorded on failures.
const (
	StageNormalize = "normalize"
	StageCancelled = "cancelled"
)

// Options configures one batch run. The FX table is a snapshot shared by
// every item for the duration of the run.
type Options struct {
	Targets domain.NormalizationTargets
	FX      *domain.FXTable

	// AutoTargets computes per-indicator-group majority targets from the
	// raw population before normalizing. Explicit Targets fields fill
	// dimensions the vote leaves empty.
	AutoTargets       bool
	AutoTargetOptions targets.Options

	// DetectScaleOutliers runs order-of-magnitude clustering per
	// indicator group after all items are normalized.
	DetectScaleOutliers bool
	ScaleOutlierOptions outliers.Options

	ForceConversions bool

	// Workers bounds pipeline concurrency; 0 means DefaultWorkers.
	Workers int
}

// Failure is the per-item error record; failures never abort the batch.
type Failure struct {
	ID    string `json:"id"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// Stats summarizes one run.
type Stats struct {
	RunID           string         `json:"run_id"`
	Total           int            `json:"total"`
	Succeeded       int            `json:"succeeded"`
	Failed          int            `json:"failed"`
	MinValue        float64        `json:"min_value"`
	MaxValue        float64        `json:"max_value"`
	MeanValue       float64        `json:"mean_value"`
	FailuresByStage map[string]int `json:"failures_by_stage,omitempty"`
	Elapsed         time.Duration  `json:"elapsed"`
}

// Result carries the outcomes in input order.
type Result struct {
	Successful []domain.NormalizedObservation `json:"successful"`
	Failed     []Failure                      `json:"failed"`
	Stats      Stats                          `json:"stats"`
	// TargetSelections is present when AutoTargets ran, keyed by group.
	TargetSelections map[string]targets.Selection `json:"target_selections,omitempty"`
}

// Processor runs batches. It holds no per-run state and is safe for
// concurrent use.
type Processor struct {
	log zerolog.Logger
}

// NewProcessor creates a batch processor.
func NewProcessor(log zerolog.Logger) *Processor {
	return &Processor{log: log.With().Str("component", "batch").Logger()}
}

// outcome is one slot of the order-preserving result table.
type outcome struct {
	normalized *domain.NormalizedObservation
	failure    *Failure
}

// Process drives items through the pipeline. Results preserve input
// order. Cancellation short-circuits unprocessed items into failure
// records and returns whatever completed.
func (p *Processor) Process(ctx context.Context, items []domain.Observation, opts Options) Result {
	start := time.Now()
	runID := uuid.NewString()

	var selections map[string]targets.Selection
	if opts.AutoTargets {
		selections = targets.Compute(items, opts.AutoTargetOptions)
	}

	outcomes := make([]outcome, len(items))
	jobs := make(chan int)

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					outcomes[idx] = outcome{failure: &Failure{
						ID:    items[idx].ID,
						Stage: StageCancelled,
						Error: ctx.Err().Error(),
					}}
					continue
				}
				outcomes[idx] = p.processOne(items[idx], opts, selections)
			}
		}()
	}
	for idx := range items {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	result := Result{TargetSelections: selections}
	for _, o := range outcomes {
		if o.normalized != nil {
			result.Successful = append(result.Successful, *o.normalized)
		} else if o.failure != nil {
			result.Failed = append(result.Failed, *o.failure)
		}
	}

	if opts.DetectScaleOutliers {
		p.annotateOutliers(items, result.Successful, opts.ScaleOutlierOptions)
	}
	for i := range result.Successful {
		result.Successful[i].QualityScore = qualityScore(result.Successful[i].Explain)
	}

	result.Stats = p.stats(runID, len(items), result, start)
	p.log.Info().
		Str("run_id", runID).
		Int("total", result.Stats.Total).
		Int("succeeded", result.Stats.Succeeded).
		Int("failed", result.Stats.Failed).
		Dur("elapsed", result.Stats.Elapsed).
		Msg("Batch completed")
	return result
}

// processOne normalizes a single observation, converting panics and
// errors into a failure record.
func (p *Processor) processOne(obs domain.Observation, opts Options, selections map[string]targets.Selection) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{failure: &Failure{
				ID:    obs.ID,
				Stage: StageNormalize,
				Error: fmt.Sprintf("panic: %v", r),
			}}
		}
	}()

	nopts := normalizer.Options{
		NormalizationTargets: opts.Targets,
		FX:                   opts.FX,
		ExplicitCurrency:     obs.ExplicitCurrency,
		ExplicitScale:        obs.ExplicitScale,
		ExplicitTimeScale:    obs.ExplicitTimeScale,
		IndicatorName:        obs.Name,
		IndicatorType:        obs.IndicatorType,
		TemporalAggregation:  obs.TemporalAggregation,
		Periodicity:          obs.Periodicity,
		ForceConversions:     opts.ForceConversions,
	}

	if selections != nil {
		if sel, ok := selections[targets.GroupKey(obs.Name)]; ok {
			if sel.Currency != "" {
				nopts.ToCurrency = sel.Currency
			}
			if sel.Magnitude != "" {
				nopts.ToMagnitude = sel.Magnitude
			}
			if sel.Time != "" {
				nopts.ToTimeScale = sel.Time
			}
			nopts.TargetSelection = &domain.TargetSelectionExplain{
				Source: "auto",
				Reason: sel.Reason,
			}
		}
	}

	res, err := normalizer.Normalize(obs.Value, obs.Unit, nopts)
	if err != nil {
		return outcome{failure: &Failure{ID: obs.ID, Stage: StageNormalize, Error: err.Error()}}
	}

	return outcome{normalized: &domain.NormalizedObservation{
		ID:                 obs.ID,
		OriginalValue:      obs.Value,
		OriginalUnit:       obs.Unit,
		NormalizedValue:    res.Value,
		NormalizedUnit:     res.Unit,
		NormalizedFullUnit: res.FullUnit,
		Explain:            res.Explain,
	}}
}

// annotateOutliers runs the detector per indicator group and attaches
// warnings to the flagged observations' explain records.
func (p *Processor) annotateOutliers(items []domain.Observation, successful []domain.NormalizedObservation, opts outliers.Options) {
	nameByID := make(map[string]string, len(items))
	for _, obs := range items {
		nameByID[obs.ID] = obs.Name
	}

	groups := make(map[string][]outliers.Item)
	byID := make(map[string]*domain.NormalizedObservation, len(successful))
	for i := range successful {
		n := &successful[i]
		byID[n.ID] = n
		key := targets.GroupKey(nameByID[n.ID])
		groups[key] = append(groups[key], outliers.Item{ID: n.ID, Normalized: n.NormalizedValue})
	}

	opts.IncludeDetails = true
	for key, group := range groups {
		res := outliers.Detect(group, opts)
		if !res.HasOutliers {
			continue
		}
		p.log.Warn().
			Str("group", key).
			Int("outliers", len(res.OutlierIDs)).
			Int("dominant_magnitude", res.DominantMagnitude).
			Msg("Scale outliers detected")

		for _, id := range res.OutlierIDs {
			n := byID[id]
			if n == nil || n.Explain == nil {
				continue
			}
			n.Explain.QualityWarnings = append(n.Explain.QualityWarnings, outliers.Warning(id, res.Details[id]))
		}
	}
}

// qualityScore derives a 0..1 score from the warnings on an explain
// record: plain warnings cost 0.2, informational ones 0.05.
func qualityScore(ex *domain.Explain) float64 {
	if ex == nil {
		return 1
	}
	score := 1.0
	for _, w := range ex.QualityWarnings {
		switch w.Severity {
		case domain.SeverityWarning:
			score -= 0.2
		default:
			score -= 0.05
		}
	}
	if score < 0 {
		return 0
	}
	return score
}

func (p *Processor) stats(runID string, total int, result Result, start time.Time) Stats {
	values := make([]float64, 0, len(result.Successful))
	for _, n := range result.Successful {
		values = append(values, n.NormalizedValue)
	}
	min, max := formulas.MinMax(values)

	var byStage map[string]int
	if len(result.Failed) > 0 {
		byStage = make(map[string]int)
		for _, f := range result.Failed {
			byStage[f.Stage]++
		}
	}

	return Stats{
		RunID:           runID,
		Total:           total,
		Succeeded:       len(result.Successful),
		Failed:          len(result.Failed),
		MinValue:        min,
		MaxValue:        max,
		MeanValue:       formulas.Mean(values),
		FailuresByStage: byStage,
		Elapsed:         time.Since(start),
	}
}
