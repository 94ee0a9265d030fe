package model

import "time"

// PomodoroSession records one completed focus interval
type PomodoroSession struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id,omitempty"`
	Minutes     int       `json:"minutes"`
	CompletedAt time.Time `json:"completed_at"`
}
