package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// SubjectListResponse represents list subjects response
type SubjectListResponse struct {
	Subjects []Subject `json:"subjects"`
	Count    int       `json:"count"`
}

// VitalsResponse represents a bulk vitals read for one subject
type VitalsResponse struct {
	SubjectID int       `json:"subject_id"`
	Hours     int       `json:"hours"`
	Readings  []Reading `json:"readings"`
	Count     int       `json:"count"`
}

// WriteResponse represents an accepted vitals write
type WriteResponse struct {
	Accepted  int    `json:"accepted"`
	RequestID string `json:"request_id"`
}

// DateRange bounds the readings a pipeline invocation consumed
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// FeatureSummary summarizes one feature-processing pass
type FeatureSummary struct {
	TotalRecords   int       `json:"total_records"`
	DateRange      DateRange `json:"date_range"`
	AvgHealthScore *float64  `json:"avg_health_score,omitempty"`
	RiskLevel      string    `json:"risk_level,omitempty"`
	StabilityScore *float64  `json:"stability_score,omitempty"`
}

// ProcessedFeaturesResponse is the combined result of the process-features
// operation. ProcessedRecords is capped at 100 rows to bound payload size.
type ProcessedFeaturesResponse struct {
	SubjectInfo      SubjectInfo              `json:"subject_info"`
	FeatureSummary   FeatureSummary           `json:"feature_summary"`
	ProcessedRecords []map[string]interface{} `json:"processed_records,omitempty"`
}

// ForecastBandPoint is one horizon step of a signal forecast
type ForecastBandPoint struct {
	Time       string  `json:"time"`
	Value      float64 `json:"value"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// ForecastAccuracy reports in-sample fit quality
type ForecastAccuracy struct {
	MAE        float64 `json:"mae"`
	MAPE       float64 `json:"mape"`
	SampleSize int     `json:"sample_size"`
}

// SignalForecast is the forecast result for one signal
type SignalForecast struct {
	Signal      string              `json:"signal"`
	Predictions []ForecastBandPoint `json:"predictions"`
	Accuracy    ForecastAccuracy    `json:"accuracy"`
}

// SignalAnomalies is the anomaly report for one signal
type SignalAnomalies struct {
	Signal            string    `json:"signal"`
	AnomalyCount      int       `json:"anomaly_count"`
	AnomalyPercentage float64   `json:"anomaly_percentage"`
	AnomalyValues     []float64 `json:"anomaly_values,omitempty"`
	AnomalyTimestamps []string  `json:"anomaly_timestamps,omitempty"`
}

// ForecastResponse is the combined forecast result for one subject
type ForecastResponse struct {
	SubjectID     int                        `json:"subject_id"`
	ForecastHours int                        `json:"forecast_hours"`
	Forecasts     map[string]SignalForecast  `json:"forecasts"`
	Anomalies     map[string]SignalAnomalies `json:"anomalies"`
	GeneratedAt   string                     `json:"generated_at"`
}

// AlertResponse is one hard-threshold alert
type AlertResponse struct {
	SubjectID int    `json:"subject_id"`
	AlertType string `json:"alert_type"`
	Severity  string `json:"severity"`
	Priority  string `json:"priority"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HourlyRollupRow is one hour's statistics for one subject
type HourlyRollupRow struct {
	Hour    string                       `json:"hour"`
	Signals map[string]RollupSignalStats `json:"signals"`
}

// RollupSignalStats holds per-signal statistics within one bucket.
// Std is omitted when fewer than 2 samples fell in the bucket.
type RollupSignalStats struct {
	Mean  float64  `json:"mean"`
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	Std   *float64 `json:"std,omitempty"`
	Count int      `json:"count"`
}

// TrendChange marks a detected breakpoint in a signal
type TrendChange struct {
	Position    int     `json:"position"`
	Timestamp   string  `json:"timestamp,omitempty"`
	Magnitude   float64 `json:"magnitude"`
	BeforeValue float64 `json:"before_value"`
	AfterValue  float64 `json:"after_value"`
}

// SignalTrend is the trend analysis for one signal
type SignalTrend struct {
	Signal     string        `json:"signal"`
	Mean       float64       `json:"mean"`
	Std        float64       `json:"std"`
	Min        float64       `json:"min"`
	Max        float64       `json:"max"`
	Direction  string        `json:"direction"`
	Volatility float64       `json:"volatility"`
	DataPoints int           `json:"data_points"`
	Changes    []TrendChange `json:"trend_changes,omitempty"`
}

// SummaryResponse composes a 7-day trend pass with a 1-day hourly rollup
type SummaryResponse struct {
	SubjectID        int                    `json:"subject_id"`
	AnalysisPeriod   string                 `json:"analysis_period"`
	Trends           map[string]SignalTrend `json:"trends"`
	HourlyDataPoints int                    `json:"hourly_data_points"`
	HourlyRollups    []HourlyRollupRow      `json:"hourly_rollups,omitempty"`
	LastUpdated      string                 `json:"last_updated"`
}

// ActiveSubject is one entry of the active-subjects monitoring view
type ActiveSubject struct {
	SubjectID     int    `json:"subject_id"`
	LastReading   string `json:"last_reading,omitempty"`
	ReadingsCount int    `json:"readings_count"`
}

// ActiveSubjectsResponse lists subjects with recent readings
type ActiveSubjectsResponse struct {
	TotalSubjects  int             `json:"total_subjects"`
	ActiveSubjects []ActiveSubject `json:"active_subjects"`
	Timestamp      string          `json:"timestamp"`
}

// SystemStatsResponse reports coarse system counters
type SystemStatsResponse struct {
	TotalSubjects       int    `json:"total_subjects"`
	RecentVitalReadings int    `json:"recent_vital_readings"`
	Timestamp           string `json:"timestamp"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
