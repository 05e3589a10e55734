package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arshad-godhrawala/healthcare-data-pipeline/internal/analytics"
)

func TestReadingValidate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		reading       Reading
		expectError   bool
		errorContains string
	}{
		{
			name:    "valid reading",
			reading: Reading{SubjectID: 1, Timestamp: now},
		},
		{
			name:          "zero subject id",
			reading:       Reading{SubjectID: 0, Timestamp: now},
			expectError:   true,
			errorContains: "subject_id",
		},
		{
			name:          "negative subject id",
			reading:       Reading{SubjectID: -4, Timestamp: now},
			expectError:   true,
			errorContains: "subject_id",
		},
		{
			name:          "missing timestamp",
			reading:       Reading{SubjectID: 1},
			expectError:   true,
			errorContains: "timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reading.Validate()
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReadingSignal(t *testing.T) {
	hr := 72.0
	resp := 16
	r := Reading{SubjectID: 1, HeartRate: &hr, Respiration: &resp}

	v, ok := r.Signal(analytics.SignalHeartRate)
	assert.True(t, ok)
	assert.Equal(t, 72.0, v)

	v, ok = r.Signal(analytics.SignalRespiration)
	assert.True(t, ok)
	assert.Equal(t, 16.0, v)

	_, ok = r.Signal(analytics.SignalTemperature)
	assert.False(t, ok)

	_, ok = r.Signal("not_a_signal")
	assert.False(t, ok)
}

func TestSubjectAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  string
		want int
	}{
		{"birthday passed this year", "1990-03-15", 35},
		{"birthday later this year", "1990-09-15", 34},
		{"birthday today", "1990-06-01", 35},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dob, err := time.Parse("2006-01-02", tt.dob)
			assert.NoError(t, err)
			s := Subject{SubjectID: 1, DateOfBirth: &dob}
			assert.Equal(t, tt.want, s.Age(now))
		})
	}

	unknown := Subject{SubjectID: 2}
	assert.Equal(t, -1, unknown.Age(now))
	assert.Nil(t, unknown.Info().Age)
}

func TestParseDateOfBirth(t *testing.T) {
	req := CreateSubjectRequest{Name: "Alice", DateOfBirth: "1990-06-15"}
	dob, err := req.ParseDateOfBirth()
	assert.NoError(t, err)
	assert.Equal(t, 1990, dob.Year())

	req.DateOfBirth = ""
	dob, err = req.ParseDateOfBirth()
	assert.NoError(t, err)
	assert.Nil(t, dob)

	req.DateOfBirth = "15/06/1990"
	_, err = req.ParseDateOfBirth()
	assert.Error(t, err)
}
