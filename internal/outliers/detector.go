// Package outliers flags observations whose normalized values sit far
// from their group's dominant order of magnitude.
package outliers

import (
	"fmt"
	"math"

	"github.com/quantatomai/normalize/internal/domain"
)

// Options tunes the detector. Zero values take the documented defaults.
type Options struct {
	// ClusterThreshold is the minimum share the dominant magnitude needs
	// before anything is flagged. Default 0.6.
	ClusterThreshold float64
	// MagnitudeDifferenceThreshold is the minimum distance in orders of
	// magnitude from the dominant cluster. Default 2.
	MagnitudeDifferenceThreshold int
	// IncludeDetails attaches per-outlier evidence.
	IncludeDetails bool
}

func (o Options) withDefaults() Options {
	if o.ClusterThreshold == 0 {
		o.ClusterThreshold = 0.6
	}
	if o.MagnitudeDifferenceThreshold == 0 {
		o.MagnitudeDifferenceThreshold = 2
	}
	return o
}

// Item is one normalized observation to examine.
type Item struct {
	ID         string
	Normalized float64
}

// Detail is the evidence for one flagged item.
type Detail struct {
	Value               float64     `json:"value"`
	Magnitude           int         `json:"magnitude"`
	DominantMagnitude   int         `json:"dominant_magnitude"`
	MagnitudeDifference int         `json:"magnitude_difference"`
	Distribution        map[int]int `json:"distribution"`
}

// Result is the detector output for one group.
type Result struct {
	HasOutliers       bool              `json:"has_outliers"`
	OutlierIDs        []string          `json:"outlier_ids,omitempty"`
	DominantMagnitude int               `json:"dominant_magnitude"`
	Distribution      map[int]int       `json:"distribution"`
	Details           map[string]Detail `json:"details,omitempty"`
}

// Detect clusters items by floor(log10(|value|)) and flags those at least
// the threshold away from the dominant magnitude. It requires at least 3
// usable items and a dominant cluster holding the threshold share;
// otherwise nothing is flagged.
func Detect(items []Item, opts Options) Result {
	opts = opts.withDefaults()

	type bucketed struct {
		item      Item
		magnitude int
	}
	var usable []bucketed
	distribution := make(map[int]int)
	for _, it := range items {
		if it.Normalized == 0 || math.IsNaN(it.Normalized) || math.IsInf(it.Normalized, 0) {
			continue
		}
		m := int(math.Floor(math.Log10(math.Abs(it.Normalized))))
		usable = append(usable, bucketed{item: it, magnitude: m})
		distribution[m]++
	}

	result := Result{Distribution: distribution}
	if len(usable) < 3 {
		return result
	}

	dominant, dominantCount := 0, -1
	for m, n := range distribution {
		if n > dominantCount || (n == dominantCount && m < dominant) {
			dominant, dominantCount = m, n
		}
	}
	result.DominantMagnitude = dominant

	if float64(dominantCount)/float64(len(usable)) < opts.ClusterThreshold {
		return result
	}

	for _, b := range usable {
		diff := b.magnitude - dominant
		if diff < 0 {
			diff = -diff
		}
		if diff < opts.MagnitudeDifferenceThreshold {
			continue
		}
		result.HasOutliers = true
		result.OutlierIDs = append(result.OutlierIDs, b.item.ID)
		if opts.IncludeDetails {
			if result.Details == nil {
				result.Details = make(map[string]Detail)
			}
			result.Details[b.item.ID] = Detail{
				Value:               b.item.Normalized,
				Magnitude:           b.magnitude,
				DominantMagnitude:   dominant,
				MagnitudeDifference: diff,
				Distribution:        distribution,
			}
		}
	}
	return result
}

// Warning converts one flagged item into the quality warning attached to
// its explain record.
func Warning(id string, d Detail) domain.Warning {
	return domain.Warning{
		Type:     domain.WarningScaleOutlier,
		Severity: domain.SeverityWarning,
		Message: fmt.Sprintf("normalized value %g sits %d orders of magnitude from the group's dominant magnitude 10^%d",
			d.Value, d.MagnitudeDifference, d.DominantMagnitude),
		Details: &domain.OutlierDetails{
			Value:               d.Value,
			Magnitude:           d.Magnitude,
			DominantMagnitude:   d.DominantMagnitude,
			MagnitudeDifference: d.MagnitudeDifference,
			Distribution:        d.Distribution,
		},
	}
}
