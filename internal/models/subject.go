package models

import "time"

// Subject is a monitored individual. Only SubjectID and DateOfBirth are
// required by the analytic pipeline; the rest is display metadata.
type Subject struct {
	SubjectID   int        `json:"subject_id"`
	Name        string     `json:"name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Address     string     `json:"address,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Age returns the subject's age in whole years at the given instant,
// or -1 when the date of birth is unknown.
func (s *Subject) Age(now time.Time) int {
	if s.DateOfBirth == nil {
		return -1
	}
	dob := *s.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// SubjectInfo is the subject metadata block embedded in pipeline results.
type SubjectInfo struct {
	SubjectID int    `json:"subject_id"`
	Name      string `json:"name,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Age       *int   `json:"age,omitempty"`
}

// Info projects the subject onto its pipeline metadata block.
func (s *Subject) Info() SubjectInfo {
	info := SubjectInfo{
		SubjectID: s.SubjectID,
		Name:      s.Name,
		Gender:    s.Gender,
	}
	if age := s.Age(time.Now()); age >= 0 {
		info.Age = &age
	}
	return info
}
