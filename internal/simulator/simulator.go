// Package simulator generates plausible vital-sign readings and pushes
// them onto the ingest queue, standing in for a fleet of bedside sensors.
package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/logging"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/models"
	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/queue"
)

// Config tunes the simulated fleet.
type Config struct {
	Subjects int           // number of simulated subjects
	Interval time.Duration // cadence between batches
	DropRate float64       // probability a field is missing from a reading
	Seed     int64         // rng seed, 0 means time-based
}

// DefaultConfig simulates a small ward reporting every 30 seconds.
func DefaultConfig() Config {
	return Config{
		Subjects: 5,
		Interval: 30 * time.Second,
		DropRate: 0.05,
	}
}

// baseline holds one subject's resting values; readings jitter around it.
type baseline struct {
	heartRate   float64
	systolic    float64
	diastolic   float64
	temperature float64
	respiration float64
	oxygen      float64
}

// Simulator produces readings for a fixed set of subjects.
type Simulator struct {
	cfg       Config
	rng       *rand.Rand
	baselines []baseline
	log       *logging.Logger
}

// New builds a simulator with per-subject baselines drawn once up front.
func New(cfg Config, log *logging.Logger) *Simulator {
	if cfg.Subjects <= 0 {
		cfg.Subjects = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if log == nil {
		log = logging.Global()
	}

	rng := rand.New(rand.NewSource(seed))
	baselines := make([]baseline, cfg.Subjects)
	for i := range baselines {
		baselines[i] = baseline{
			heartRate:   60 + rng.Float64()*30,
			systolic:    105 + rng.Float64()*25,
			diastolic:   65 + rng.Float64()*20,
			temperature: 36.3 + rng.Float64()*0.8,
			respiration: 12 + rng.Float64()*6,
			oxygen:      95 + rng.Float64()*4,
		}
	}

	return &Simulator{cfg: cfg, rng: rng, baselines: baselines, log: log}
}

// gauss returns a normally distributed jitter with the given spread.
func (s *Simulator) gauss(std float64) float64 {
	return s.rng.NormFloat64() * std
}

func (s *Simulator) keep() bool {
	return s.rng.Float64() >= s.cfg.DropRate
}

// Reading produces one reading for the subject at the given instant.
// Occasional fields are dropped to mimic sensor gaps.
func (s *Simulator) Reading(subjectID int, now time.Time) models.Reading {
	b := s.baselines[(subjectID-1)%len(s.baselines)]
	reading := models.Reading{
		SubjectID: subjectID,
		Timestamp: now.UTC(),
		SensorID:  fmt.Sprintf("sim-%03d", subjectID),
	}

	if s.keep() {
		v := clamp(b.heartRate+s.gauss(4), 35, 180)
		reading.HeartRate = &v
	}
	if s.keep() {
		sys := clamp(b.systolic+s.gauss(6), 70, 220)
		dia := clamp(b.diastolic+s.gauss(4), 40, 130)
		reading.Systolic = &sys
		reading.Diastolic = &dia
	}
	if s.keep() {
		v := clamp(b.temperature+s.gauss(0.15), 34, 41.5)
		reading.Temperature = &v
	}
	if s.keep() {
		v := int(clamp(b.respiration+s.gauss(1.5), 6, 40))
		reading.Respiration = &v
	}
	if s.keep() {
		v := clamp(b.oxygen+s.gauss(1), 80, 100)
		reading.OxygenSaturation = &v
	}
	return reading
}

// Batch produces one reading per subject.
func (s *Simulator) Batch(now time.Time) []models.Reading {
	readings := make([]models.Reading, 0, s.cfg.Subjects)
	for i := 1; i <= s.cfg.Subjects; i++ {
		readings = append(readings, s.Reading(i, now))
	}
	return readings
}

// Run publishes batches on the configured cadence until the context is
// cancelled. Publish failures are logged and the next tick retried.
func (s *Simulator) Run(ctx context.Context, publisher queue.Publisher) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			batch := s.Batch(now)
			requestID := fmt.Sprintf("sim-%d", now.UnixNano())
			if err := queue.PublishReadings(ctx, publisher, requestID, batch); err != nil {
				s.log.Warn("Failed to publish simulated batch", "error", err)
				continue
			}
			s.log.Debug("Published simulated batch",
				"subjects", len(batch),
				"request_id", requestID)
		}
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
