package gamify

import (
	"testing"
	"time"

	"github.com/existflow/iplan/internal/model"
)

func completedOn(day time.Time) model.Task {
	at := day
	return model.Task{
		ID:          "t-" + day.Format(model.DateLayout),
		Title:       "done",
		Status:      model.StatusCompleted,
		Priority:    model.PriorityMedium,
		CreatedAt:   day.AddDate(0, 0, -1),
		CompletedAt: &at,
	}
}

func TestCalculateStreakEmpty(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	if got := CalculateStreak(nil, now); got != 0 {
		t.Fatalf("expected 0 for no tasks, got %d", got)
	}

	// Pending tasks and completed tasks without timestamps do not count
	tasks := []model.Task{
		{ID: "a", Status: model.StatusPending},
		{ID: "b", Status: model.StatusCompleted},
	}
	if got := CalculateStreak(tasks, now); got != 0 {
		t.Fatalf("expected 0 without completion timestamps, got %d", got)
	}
}

func TestCalculateStreakSingleToday(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	tasks := []model.Task{completedOn(now.Add(-2 * time.Hour))}
	if got := CalculateStreak(tasks, now); got != 1 {
		t.Fatalf("expected streak 1, got %d", got)
	}
}

func TestCalculateStreakConsecutiveDays(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		completedOn(now),
		completedOn(now.AddDate(0, 0, -1)),
		completedOn(now.AddDate(0, 0, -2)),
	}
	if got := CalculateStreak(tasks, now); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestCalculateStreakSurvivesUntilActedToday(t *testing.T) {
	// Completions yesterday and the day before, nothing today yet: the
	// walk starts from yesterday and the streak stays intact.
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		completedOn(now.AddDate(0, 0, -1)),
		completedOn(now.AddDate(0, 0, -2)),
	}
	if got := CalculateStreak(tasks, now); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestCalculateStreakGapCapsAtSuffix(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		completedOn(now),
		completedOn(now.AddDate(0, 0, -1)),
		// gap at -2
		completedOn(now.AddDate(0, 0, -3)),
		completedOn(now.AddDate(0, 0, -4)),
	}
	if got := CalculateStreak(tasks, now); got != 2 {
		t.Fatalf("expected streak capped at 2 by the gap, got %d", got)
	}
}

func TestCalculateStreakDeduplicatesSameDay(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		completedOn(now),
		completedOn(now.Add(-1 * time.Hour)),
		completedOn(now.Add(-3 * time.Hour)),
	}
	if got := CalculateStreak(tasks, now); got != 1 {
		t.Fatalf("multiple completions on one day must count once, got %d", got)
	}
}

func TestCalculateStreakBrokenByMissedYesterday(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		completedOn(now.AddDate(0, 0, -2)),
		completedOn(now.AddDate(0, 0, -3)),
	}
	if got := CalculateStreak(tasks, now); got != 0 {
		t.Fatalf("expected streak 0 after a missed day, got %d", got)
	}
}

func TestHabitStreak(t *testing.T) {
	now := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(model.DateLayout)
	}
	logs := []model.HabitLog{
		{HabitID: "h1", Date: day(0)},
		{HabitID: "h1", Date: day(-1)},
		{HabitID: "h2", Date: day(0)},
		{HabitID: "h1", Date: day(-3)},
	}
	if got := HabitStreak(logs, "h1", now); got != 2 {
		t.Fatalf("expected habit streak 2, got %d", got)
	}
	if got := HabitStreak(logs, "h2", now); got != 1 {
		t.Fatalf("expected habit streak 1, got %d", got)
	}
	if got := HabitStreak(logs, "h3", now); got != 0 {
		t.Fatalf("expected habit streak 0, got %d", got)
	}
}
