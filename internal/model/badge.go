package model

import "time"

// BadgeID identifies an achievement in the closed badge set
type BadgeID string

const (
	BadgeFirstTask     BadgeID = "first_task"
	BadgeTenTasks      BadgeID = "ten_tasks"
	BadgeFiftyTasks    BadgeID = "fifty_tasks"
	BadgeHundredTasks  BadgeID = "hundred_tasks"
	BadgeStreak3       BadgeID = "streak_3"
	BadgeStreak7       BadgeID = "streak_7"
	BadgeStreak30      BadgeID = "streak_30"
	BadgeFirstPomodoro BadgeID = "first_pomodoro"
	BadgeTenPomodoros  BadgeID = "ten_pomodoros"
	BadgeNoteTaker     BadgeID = "note_taker"
	BadgeHabitStarter  BadgeID = "habit_starter"
	BadgeNightOwl      BadgeID = "night_owl"
	BadgeEarlyBird     BadgeID = "early_bird"
	BadgeAllToday      BadgeID = "all_today"
)

// AllBadgeIDs lists the closed badge set in display order
var AllBadgeIDs = []BadgeID{
	BadgeFirstTask, BadgeTenTasks, BadgeFiftyTasks, BadgeHundredTasks,
	BadgeStreak3, BadgeStreak7, BadgeStreak30,
	BadgeFirstPomodoro, BadgeTenPomodoros,
	BadgeNoteTaker, BadgeHabitStarter,
	BadgeNightOwl, BadgeEarlyBird, BadgeAllToday,
}

// Badge records a single achievement unlock. Unlocks are monotonic: once
// earned a badge is never removed by the evaluator.
type Badge struct {
	ID         BadgeID   `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
