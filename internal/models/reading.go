package models

import (
	"fmt"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

// Reading is a single set of vital-sign measurements for one subject at one
// instant. Optional fields are pointers: nil means the signal was not measured,
// which is distinct from a measured zero.
type Reading struct {
	SubjectID        int        `json:"subject_id"`
	Timestamp        time.Time  `json:"timestamp"`
	HeartRate        *float64   `json:"heart_rate,omitempty"`
	Systolic         *float64   `json:"systolic,omitempty"`
	Diastolic        *float64   `json:"diastolic,omitempty"`
	Temperature      *float64   `json:"temperature,omitempty"`
	Respiration      *int       `json:"respiration,omitempty"`
	OxygenSaturation *float64   `json:"oxygen_saturation,omitempty"`
	SensorID         string     `json:"sensor_id,omitempty"`
}

// Validate checks the invariants ingestion guarantees downstream consumers.
func (r *Reading) Validate() error {
	if r.SubjectID < 1 {
		return fmt.Errorf("subject_id must be >= 1, got %d", r.SubjectID)
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	return nil
}

// Signal returns the value of the named signal and whether it was measured.
func (r *Reading) Signal(name string) (float64, bool) {
	switch name {
	case analytics.SignalHeartRate:
		if r.HeartRate != nil {
			return *r.HeartRate, true
		}
	case analytics.SignalSystolic:
		if r.Systolic != nil {
			return *r.Systolic, true
		}
	case analytics.SignalDiastolic:
		if r.Diastolic != nil {
			return *r.Diastolic, true
		}
	case analytics.SignalTemperature:
		if r.Temperature != nil {
			return *r.Temperature, true
		}
	case analytics.SignalRespiration:
		if r.Respiration != nil {
			return float64(*r.Respiration), true
		}
	case analytics.SignalOxygenSaturation:
		if r.OxygenSaturation != nil {
			return *r.OxygenSaturation, true
		}
	}
	return 0, false
}

// ReadingBatch is the unit published on the ingestion queue.
type ReadingBatch struct {
	Readings []Reading `json:"readings"`
}
