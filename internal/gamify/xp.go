// Package gamify holds the pure derivations behind the app's gamification:
// XP rewards, the leveling curve, streak accounting, and badge unlocks.
package gamify

import "github.com/existflow/iplan/internal/model"

// XP rewards per productive action
const (
	RewardCompleteTask         = 15
	RewardCompleteHighPriority = 25
	RewardCreateNote           = 5
	RewardCompletePomodoro     = 20
	RewardHabitLog             = 10
)

// TaskReward returns the XP granted for completing (or reclaimed when
// uncompleting) a task of the given priority.
func TaskReward(p model.Priority) int {
	if p == model.PriorityHigh {
		return RewardCompleteHighPriority
	}
	return RewardCompleteTask
}

// ClampXP keeps a running XP total at a floor of 0
func ClampXP(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp
}
