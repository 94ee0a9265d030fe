package model

import "time"

// Habit is a recurring daily commitment
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// HabitLog marks a single day's completion of a habit. At most one log
// exists per (habit, date) pair; Date uses DateLayout.
type HabitLog struct {
	HabitID string `json:"habit_id"`
	Date    string `json:"date"`
}
