package model

import "time"

// Language codes supported for display
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
	LanguageRussian Language = "ru"
)

// Theme is the display theme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// AppState is the aggregate root: the unit of persistence and of remote
// sync. Version is a monotonic counter bumped by every local transition;
// the reconciler compares versions instead of whole snapshots.
type AppState struct {
	Version   int64             `json:"version"`
	User      UserProfile       `json:"user"`
	Subjects  []Subject         `json:"subjects"`
	Tasks     []Task            `json:"tasks"`
	Notes     []Note            `json:"notes"`
	Habits    []Habit           `json:"habits"`
	HabitLogs []HabitLog        `json:"habit_logs"`
	Sessions  []PomodoroSession `json:"sessions"`
	XP        int               `json:"xp"`
	Badges    []Badge           `json:"badges"`
	Language  Language          `json:"language"`
	Theme     Theme             `json:"theme"`
}

// DefaultState returns the state used before anything has been persisted
func DefaultState() AppState {
	return AppState{
		User: UserProfile{
			Name:     "Guest User",
			JoinedAt: time.Now(),
		},
		Language: LanguageEnglish,
		Theme:    ThemeLight,
	}
}

// Clone returns a deep copy so callers can hold a snapshot without
// aliasing the store's slices.
func (s AppState) Clone() AppState {
	out := s
	out.Subjects = append([]Subject(nil), s.Subjects...)
	out.Tasks = append([]Task(nil), s.Tasks...)
	out.Notes = append([]Note(nil), s.Notes...)
	out.Habits = append([]Habit(nil), s.Habits...)
	out.HabitLogs = append([]HabitLog(nil), s.HabitLogs...)
	out.Sessions = append([]PomodoroSession(nil), s.Sessions...)
	out.Badges = append([]Badge(nil), s.Badges...)
	return out
}

// HasBadge reports whether the badge is already unlocked
func (s *AppState) HasBadge(id BadgeID) bool {
	for _, b := range s.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// CompletedTasks counts tasks in the completed status
func (s *AppState) CompletedTasks() int {
	n := 0
	for _, t := range s.Tasks {
		if t.Status == StatusCompleted {
			n++
		}
	}
	return n
}

// HasHabitLog reports whether the (habit, date) pair is logged
func (s *AppState) HasHabitLog(habitID, date string) bool {
	for _, l := range s.HabitLogs {
		if l.HabitID == habitID && l.Date == date {
			return true
		}
	}
	return false
}
