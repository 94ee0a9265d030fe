package gamify

import (
	"time"

	"github.com/existflow/iplan/internal/model"
)

// CheckBadges evaluates every unlock rule against the state snapshot and
// returns the resulting badge set. Existing badges are always carried over
// (unlocks are monotonic) so re-running on an unchanged state is a no-op.
// New unlocks are stamped with the evaluation time.
func CheckBadges(st *model.AppState, now time.Time) []model.Badge {
	badges := append([]model.Badge(nil), st.Badges...)
	have := make(map[model.BadgeID]bool, len(badges))
	for _, b := range badges {
		have[b.ID] = true
	}
	unlock := func(id model.BadgeID) {
		if !have[id] {
			have[id] = true
			badges = append(badges, model.Badge{ID: id, UnlockedAt: now})
		}
	}

	completed := st.CompletedTasks()
	if completed >= 1 {
		unlock(model.BadgeFirstTask)
	}
	if completed >= 10 {
		unlock(model.BadgeTenTasks)
	}
	if completed >= 50 {
		unlock(model.BadgeFiftyTasks)
	}
	if completed >= 100 {
		unlock(model.BadgeHundredTasks)
	}

	streak := CalculateStreak(st.Tasks, now)
	if streak >= 3 {
		unlock(model.BadgeStreak3)
	}
	if streak >= 7 {
		unlock(model.BadgeStreak7)
	}
	if streak >= 30 {
		unlock(model.BadgeStreak30)
	}

	if len(st.Sessions) >= 1 {
		unlock(model.BadgeFirstPomodoro)
	}
	if len(st.Sessions) >= 10 {
		unlock(model.BadgeTenPomodoros)
	}

	if len(st.Notes) >= 5 {
		unlock(model.BadgeNoteTaker)
	}
	if len(st.Habits) >= 3 {
		unlock(model.BadgeHabitStarter)
	}

	hour := now.Hour()
	if hour < 5 && completed >= 1 {
		unlock(model.BadgeNightOwl)
	}
	if hour >= 5 && hour < 7 && completed >= 1 {
		unlock(model.BadgeEarlyBird)
	}

	if allDueTodayDone(st.Tasks, now) {
		unlock(model.BadgeAllToday)
	}

	return badges
}

// allDueTodayDone reports whether at least one task is due today and every
// task due today is completed.
func allDueTodayDone(tasks []model.Task, now time.Time) bool {
	today := now.Format(model.DateLayout)
	due := 0
	for _, t := range tasks {
		if !t.IsDueOn(today) {
			continue
		}
		due++
		if t.Status != model.StatusCompleted {
			return false
		}
	}
	return due > 0
}
