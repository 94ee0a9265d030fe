package store

import (
	"errors"

	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/model"
)

// AddHabit creates a habit
func (s *Store) AddHabit(name, emoji, color string) (model.Habit, error) {
	if name == "" {
		return model.Habit{}, errors.New("store: habit name is required")
	}
	now := s.now()
	h := model.Habit{ID: s.newID(), Name: name, Emoji: emoji, Color: color, CreatedAt: now}
	err := s.apply(OriginLocal, func(st *model.AppState) error {
		st.Habits = append(st.Habits, h)
		s.refresh(st, now)
		return nil
	})
	return h, err
}

// DeleteHabit removes a habit along with its completion logs
func (s *Store) DeleteHabit(id string) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		found := false
		habits := st.Habits[:0]
		for _, h := range st.Habits {
			if h.ID == id {
				found = true
				continue
			}
			habits = append(habits, h)
		}
		if !found {
			return ErrNotFound
		}
		st.Habits = habits

		logs := st.HabitLogs[:0]
		for _, l := range st.HabitLogs {
			if l.HabitID != id {
				logs = append(logs, l)
			}
		}
		st.HabitLogs = logs
		return nil
	})
}

// ToggleHabitLog flips the (habit, date) log: absent adds it and grants
// the habit XP reward, present removes it with no XP change. At most one
// log ever exists per pair. Returns whether the log is present afterward.
func (s *Store) ToggleHabitLog(habitID, date string) (bool, error) {
	logged := false
	err := s.apply(OriginLocal, func(st *model.AppState) error {
		exists := false
		for _, h := range st.Habits {
			if h.ID == habitID {
				exists = true
				break
			}
		}
		if !exists {
			return ErrNotFound
		}

		for i, l := range st.HabitLogs {
			if l.HabitID == habitID && l.Date == date {
				st.HabitLogs = append(st.HabitLogs[:i], st.HabitLogs[i+1:]...)
				return nil
			}
		}

		st.HabitLogs = append(st.HabitLogs, model.HabitLog{HabitID: habitID, Date: date})
		st.XP += gamify.RewardHabitLog
		s.refresh(st, s.now())
		logged = true
		return nil
	})
	return logged, err
}
