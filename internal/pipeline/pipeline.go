// Package pipeline orchestrates the analytics passes: feature engineering,
// health scoring, forecasting, anomaly detection, trend analysis and
// rollups. It operates on readings already fetched from the stores and
// never logs measurement values.
package pipeline

import (
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/features"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/forecast"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/scoring"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics/trend"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/config"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
)

// Pipeline wires the analytic engines together behind one orchestrator.
type Pipeline struct {
	cfg      config.PipelineConfig
	features *features.Engine
	scoring  *scoring.Engine
	trends   *trend.Analyzer
	models   *forecast.ModelCache
	log      *logging.Logger
}

// New builds a pipeline from configuration.
func New(cfg config.PipelineConfig, log *logging.Logger) *Pipeline {
	if cfg.MaxProcessedRows <= 0 {
		cfg.MaxProcessedRows = 100
	}
	if cfg.ForecastHorizon <= 0 {
		cfg.ForecastHorizon = 24
	}
	if cfg.ForecastMinPoints <= 0 {
		cfg.ForecastMinPoints = 10
	}
	if cfg.AnomalyAlgorithm == "" {
		cfg.AnomalyAlgorithm = "isolation_forest"
	}
	if cfg.Contamination <= 0 {
		cfg.Contamination = 0.1
	}
	if log == nil {
		log = logging.Global()
	}
	return &Pipeline{
		cfg:      cfg,
		features: features.NewEngine(features.DefaultConfig()),
		scoring:  scoring.NewEngine(),
		trends:   trend.NewAnalyzer(),
		models:   forecast.NewModelCache(),
		log:      log,
	}
}

// ModelCache exposes the forecast model cache, used by stats endpoints and
// tests.
func (p *Pipeline) ModelCache() *forecast.ModelCache {
	return p.models
}

// seriesBySignal splits readings into per-signal ordered series.
func seriesBySignal(readings []models.Reading) map[string]analytics.VitalSeries {
	out := make(map[string]analytics.VitalSeries)
	for _, reading := range readings {
		for _, signal := range analytics.Signals() {
			if value, ok := reading.Signal(signal); ok {
				out[signal] = append(out[signal], analytics.VitalPoint{
					Time:  reading.Timestamp,
					Value: value,
				})
			}
		}
	}
	for _, series := range out {
		series.Sort()
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
