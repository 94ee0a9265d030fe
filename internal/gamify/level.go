package gamify

// LevelStep is the uniform XP threshold between levels
const LevelStep = 100

// Level describes where a given XP total sits on the leveling curve
type Level struct {
	Level          int `json:"level"`
	CurrentLevelXP int `json:"current_level_xp"`
	NextLevelXP    int `json:"next_level_xp"`
}

// GetLevel maps a non-negative XP total to its level and the progress
// within that level. Every LevelStep XP is one level; the threshold is the
// same at every level. Callers clamp XP at 0 before getting here.
func GetLevel(xp int) Level {
	return Level{
		Level:          xp/LevelStep + 1,
		CurrentLevelXP: xp % LevelStep,
		NextLevelXP:    LevelStep,
	}
}
