package aggregate

import (
	"time"

	"github.com/quantatomai/normalize/pkg/formulas"
)

// Point is one timestamped value in a series.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit,omitempty"`
}

// MovingAverage returns the trailing moving average of the series. Each
// output point keeps the timestamp and unit of its anchor point; the
// first window-1 points average over however many values exist so far.
func MovingAverage(points []Point, window int) []Point {
	if window < 1 || len(points) == 0 {
		return nil
	}

	out := make([]Point, len(points))
	values := make([]float64, 0, window)
	for i, p := range points {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		values = values[:0]
		for _, q := range points[start : i+1] {
			values = append(values, q.Value)
		}
		out[i] = Point{
			Timestamp: p.Timestamp,
			Value:     formulas.Mean(values),
			Unit:      p.Unit,
		}
	}
	return out
}
