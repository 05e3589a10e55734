package models

import "time"

// CreateSubjectRequest is the POST /v1/subjects body
type CreateSubjectRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Gender      string `json:"gender,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ParseDateOfBirth parses the YYYY-MM-DD date of birth, nil when absent.
func (r *CreateSubjectRequest) ParseDateOfBirth() (*time.Time, error) {
	if r.DateOfBirth == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// WriteVitalsRequest is the POST /v1/subjects/:id/vitals body
type WriteVitalsRequest struct {
	Readings []Reading `json:"readings"`
}
