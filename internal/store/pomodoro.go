package store

import (
	"errors"

	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/model"
)

// RecordPomodoro records a completed focus session and grants the
// pomodoro XP reward. Running countdown state is local to the caller and
// never persisted per tick; only the finished session lands here.
func (s *Store) RecordPomodoro(subjectID string, minutes int) (model.PomodoroSession, error) {
	if minutes <= 0 {
		return model.PomodoroSession{}, errors.New("store: session minutes must be positive")
	}

	now := s.now()
	session := model.PomodoroSession{
		ID:          s.newID(),
		SubjectID:   subjectID,
		Minutes:     minutes,
		CompletedAt: now,
	}
	err := s.apply(OriginLocal, func(st *model.AppState) error {
		st.Sessions = append(st.Sessions, session)
		st.XP += gamify.RewardCompletePomodoro
		s.refresh(st, now)
		return nil
	})
	return session, err
}
