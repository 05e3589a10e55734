// Package trend characterizes the direction, volatility and structural
// breaks of vital-sign series.
package trend

import (
	"math"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

// Direction labels for a series.
const (
	DirectionIncreasing = "increasing"
	DirectionDecreasing = "decreasing"
)

// Change marks a detected level shift in a series.
type Change struct {
	Position    int       `json:"position"`
	Timestamp   time.Time `json:"timestamp"`
	Magnitude   float64   `json:"magnitude"`
	BeforeValue float64   `json:"before_value"`
	AfterValue  float64   `json:"after_value"`
}

// Summary is the full trend characterization of one signal.
type Summary struct {
	Signal     string   `json:"signal"`
	Direction  string   `json:"direction"`
	Volatility float64  `json:"volatility"`
	Changes    []Change `json:"changes"`
	SampleSize int      `json:"sample_size"`
}

// Analyzer computes trend summaries over vital series.
type Analyzer struct {
	// MaxWindow caps the rolling window used for breakpoint detection.
	MaxWindow int
}

// NewAnalyzer returns an analyzer with the default window cap.
func NewAnalyzer() *Analyzer {
	return &Analyzer{MaxWindow: 10}
}

// Analyze produces a trend summary for the series. Series shorter than two
// points get an empty summary with no direction.
func (a *Analyzer) Analyze(signal string, series analytics.VitalSeries) Summary {
	summary := Summary{Signal: signal, SampleSize: series.Len()}
	if series.Len() < 2 {
		return summary
	}
	values := series.Values()
	summary.Direction = Direction(values)
	summary.Volatility = Volatility(values)
	summary.Changes = a.Breakpoints(series)
	return summary
}

// Direction compares the series endpoints: strictly higher last value means
// increasing, everything else decreasing.
func Direction(values []float64) string {
	if len(values) < 2 {
		return ""
	}
	if values[len(values)-1] > values[0] {
		return DirectionIncreasing
	}
	return DirectionDecreasing
}

// Volatility is the coefficient of variation of the series. A zero mean
// yields zero rather than dividing by it.
func Volatility(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := analytics.Mean(values)
	if mean == 0 {
		return 0
	}
	return analytics.StdDev(values) / mean
}

// Breakpoints finds positions where the rolling mean before and after a
// point differ by more than half the overall standard deviation. The window
// shrinks to a quarter of the series length; once it falls below three
// points the comparison is too noisy to trust and no breakpoints are
// reported.
func (a *Analyzer) Breakpoints(series analytics.VitalSeries) []Change {
	n := series.Len()
	values := series.Values()

	window := a.MaxWindow
	if window <= 0 {
		window = 10
	}
	if quarter := n / 4; quarter < window {
		window = quarter
	}
	if window < 3 {
		return nil
	}

	std := analytics.StdDev(values)
	if std == 0 {
		return nil
	}
	threshold := 0.5 * std

	var changes []Change
	for i := window; i <= n-window; i++ {
		before := analytics.Mean(values[i-window : i])
		after := analytics.Mean(values[i : i+window])
		magnitude := math.Abs(after - before)
		if magnitude > threshold {
			changes = append(changes, Change{
				Position:    i,
				Timestamp:   series[i].Time,
				Magnitude:   magnitude,
				BeforeValue: before,
				AfterValue:  after,
			})
		}
	}
	return changes
}
