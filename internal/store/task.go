package store

import (
	"errors"
	"time"

	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/model"
)

// AddTask creates a task. The caller must supply a subject id; title is
// required. Due dates for the today/tomorrow due types are resolved here
// so the stored task always carries a concrete calendar date.
func (s *Store) AddTask(t model.Task) (model.Task, error) {
	if t.Title == "" {
		return model.Task{}, errors.New("store: task title is required")
	}
	if t.SubjectID == "" {
		return model.Task{}, errors.New("store: task subject is required")
	}

	now := s.now()
	t.ID = s.newID()
	t.CreatedAt = now
	t.Status = model.StatusPending
	t.CompletedAt = nil
	if !t.Priority.IsValid() {
		t.Priority = model.PriorityMedium
	}
	switch t.DueType {
	case model.DueToday:
		t.DueDate = now.Format(model.DateLayout)
	case model.DueTomorrow:
		t.DueDate = now.AddDate(0, 0, 1).Format(model.DateLayout)
	case model.DueSpecific:
		// provided by the caller
	default:
		t.DueType = model.DueOpen
		t.DueDate = ""
	}

	err := s.apply(OriginLocal, func(st *model.AppState) error {
		for _, sub := range st.Subjects {
			if sub.ID == t.SubjectID {
				st.Tasks = append(st.Tasks, t)
				return nil
			}
		}
		return ErrNotFound
	})
	return t, err
}

// UpdateTask replaces a task by id. A status transition into completed
// stamps the completion time and grants the priority's XP reward; the
// reverse transition clears the stamp and reclaims the same amount. The
// badge evaluator re-runs before the new state is visible.
func (s *Store) UpdateTask(updated model.Task) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		return s.applyTaskUpdate(st, updated)
	})
}

// SetTaskStatus moves one task to the given status, applying the same XP
// and completion-stamp rules as UpdateTask.
func (s *Store) SetTaskStatus(id string, status model.TaskStatus) (model.Task, error) {
	var out model.Task
	err := s.apply(OriginLocal, func(st *model.AppState) error {
		for i, t := range st.Tasks {
			if t.ID == id {
				t.Status = status
				if err := s.applyTaskUpdate(st, t); err != nil {
					return err
				}
				out = st.Tasks[i]
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return model.Task{}, err
	}
	return out, nil
}

func (s *Store) applyTaskUpdate(st *model.AppState, updated model.Task) error {
	idx := -1
	for i := range st.Tasks {
		if st.Tasks[i].ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	prior := st.Tasks[idx]
	now := s.now()
	wasDone := prior.Status == model.StatusCompleted
	isDone := updated.Status == model.StatusCompleted

	switch {
	case !wasDone && isDone:
		at := now
		updated.CompletedAt = &at
		st.XP += gamify.TaskReward(updated.Priority)
	case wasDone && !isDone:
		updated.CompletedAt = nil
		st.XP -= gamify.TaskReward(updated.Priority)
	case isDone:
		// still completed, keep the original stamp
		updated.CompletedAt = prior.CompletedAt
	default:
		updated.CompletedAt = nil
	}

	st.Tasks[idx] = updated
	s.refresh(st, now)
	return nil
}

// DeleteTask removes a task. XP already granted for it is kept.
func (s *Store) DeleteTask(id string) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		for i := range st.Tasks {
			if st.Tasks[i].ID == id {
				st.Tasks = append(st.Tasks[:i], st.Tasks[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// Task looks up a task by id or by unambiguous id prefix
func (s *Store) Task(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var match model.Task
	found := 0
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return t, true
		}
		if len(id) >= 4 && len(id) < len(t.ID) && t.ID[:len(id)] == id {
			match = t
			found++
		}
	}
	return match, found == 1
}

// TasksDueOn returns the tasks due on the given local calendar day
func (s *Store) TasksDueOn(day time.Time) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	date := day.Format(model.DateLayout)
	var out []model.Task
	for _, t := range s.state.Tasks {
		if t.IsDueOn(date) {
			out = append(out, t)
		}
	}
	return out
}
