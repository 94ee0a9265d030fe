package gamify

import (
	"time"

	"github.com/existflow/iplan/internal/model"
)

// CalculateStreak returns the count of consecutive local calendar days,
// ending today or yesterday, with at least one completed task. The walk
// starts from yesterday when today has no completion yet, so a streak is
// not broken before the user has had a chance to act today. Day boundaries
// follow now's location, not a rolling 24h window.
func CalculateStreak(tasks []model.Task, now time.Time) int {
	days := make(map[string]struct{})
	for _, t := range tasks {
		if t.Status == model.StatusCompleted && t.CompletedAt != nil {
			days[t.CompletedAt.In(now.Location()).Format(model.DateLayout)] = struct{}{}
		}
	}
	return walkBack(days, now)
}

// HabitStreak returns the consecutive-day streak for one habit, computed
// over its log entries with the same boundary rule as CalculateStreak.
func HabitStreak(logs []model.HabitLog, habitID string, now time.Time) int {
	days := make(map[string]struct{})
	for _, l := range logs {
		if l.HabitID == habitID {
			days[l.Date] = struct{}{}
		}
	}
	return walkBack(days, now)
}

func walkBack(days map[string]struct{}, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	day := now
	if _, ok := days[day.Format(model.DateLayout)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := days[day.Format(model.DateLayout)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
