package gamify

import "testing"

func TestGetLevel(t *testing.T) {
	tests := []struct {
		xp      int
		level   int
		current int
	}{
		{0, 1, 0},
		{1, 1, 1},
		{99, 1, 99},
		{100, 2, 0},
		{115, 2, 15},
		{250, 3, 50},
		{1000, 11, 0},
	}
	for _, tc := range tests {
		got := GetLevel(tc.xp)
		if got.Level != tc.level || got.CurrentLevelXP != tc.current {
			t.Errorf("GetLevel(%d) = {%d %d}, want {%d %d}",
				tc.xp, got.Level, got.CurrentLevelXP, tc.level, tc.current)
		}
		if got.NextLevelXP != LevelStep {
			t.Errorf("GetLevel(%d).NextLevelXP = %d, want %d", tc.xp, got.NextLevelXP, LevelStep)
		}
	}
}

func TestGetLevelRoundTrip(t *testing.T) {
	for xp := 0; xp <= 2500; xp++ {
		got := GetLevel(xp)
		if total := got.CurrentLevelXP + (got.Level-1)*LevelStep; total != xp {
			t.Fatalf("level arithmetic does not reconstruct xp=%d: got %d", xp, total)
		}
		if got.CurrentLevelXP < 0 || got.CurrentLevelXP >= LevelStep {
			t.Fatalf("CurrentLevelXP out of range for xp=%d: %d", xp, got.CurrentLevelXP)
		}
	}
}

func TestClampXP(t *testing.T) {
	if got := ClampXP(-40); got != 0 {
		t.Fatalf("ClampXP(-40) = %d, want 0", got)
	}
	if got := ClampXP(7); got != 7 {
		t.Fatalf("ClampXP(7) = %d, want 7", got)
	}
}
