package store

import (
	"errors"

	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/model"
)

// AddNote creates a note and grants the note-creation XP reward. The
// grant is flat: deleting the note later does not claw it back.
func (s *Store) AddNote(n model.Note) (model.Note, error) {
	if n.Title == "" && n.Body == "" {
		return model.Note{}, errors.New("store: note needs a title or body")
	}

	now := s.now()
	n.ID = s.newID()
	n.CreatedAt = now
	n.UpdatedAt = now

	err := s.apply(OriginLocal, func(st *model.AppState) error {
		st.Notes = append(st.Notes, n)
		st.XP += gamify.RewardCreateNote
		s.refresh(st, now)
		return nil
	})
	return n, err
}

// UpdateNote replaces a note by id and bumps its updated timestamp
func (s *Store) UpdateNote(n model.Note) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		for i := range st.Notes {
			if st.Notes[i].ID == n.ID {
				n.CreatedAt = st.Notes[i].CreatedAt
				n.UpdatedAt = s.now()
				st.Notes[i] = n
				return nil
			}
		}
		return ErrNotFound
	})
}

// ToggleNotePin flips a note's pinned flag
func (s *Store) ToggleNotePin(id string) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		for i := range st.Notes {
			if st.Notes[i].ID == id {
				st.Notes[i].Pinned = !st.Notes[i].Pinned
				st.Notes[i].UpdatedAt = s.now()
				return nil
			}
		}
		return ErrNotFound
	})
}

// DeleteNote removes a note
func (s *Store) DeleteNote(id string) error {
	return s.apply(OriginLocal, func(st *model.AppState) error {
		for i := range st.Notes {
			if st.Notes[i].ID == id {
				st.Notes = append(st.Notes[:i], st.Notes[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
