package store

import (
	"errors"

	"github.com/existflow/iplan/internal/model"
)

// AddSubject creates a subject with a fresh id
func (s *Store) AddSubject(name, color string) (model.Subject, error) {
	if name == "" {
		return model.Subject{}, errors.New("store: subject name is required")
	}
	sub := model.Subject{ID: s.newID(), Name: name, Color: color}
	err := s.apply(OriginLocal, func(st *model.AppState) error {
		st.Subjects = append(st.Subjects, sub)
		return nil
	})
	return sub, err
}

// UpdateSubject replaces a subject by id
func (s *Store) UpdateSubject(sub model.Subject) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		for i := range st.Subjects {
			if st.Subjects[i].ID == sub.ID {
				st.Subjects[i] = sub
				return nil
			}
		}
		return ErrNotFound
	})
}

// DeleteSubject removes a subject and cascade-deletes every task that
// references it. Notes keep their subject reference.
func (s *Store) DeleteSubject(id string) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		found := false
		subjects := st.Subjects[:0]
		for _, sub := range st.Subjects {
			if sub.ID == id {
				found = true
				continue
			}
			subjects = append(subjects, sub)
		}
		if !found {
			return ErrNotFound
		}
		st.Subjects = subjects

		tasks := st.Tasks[:0]
		for _, t := range st.Tasks {
			if t.SubjectID != id {
				tasks = append(tasks, t)
			}
		}
		st.Tasks = tasks
		s.refresh(st, s.now())
		return nil
	})
}

// Subject looks up a subject by id
func (s *Store) Subject(id string) (model.Subject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.state.Subjects {
		if sub.ID == id {
			return sub, true
		}
	}
	return model.Subject{}, false
}
