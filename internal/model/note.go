package model

import (
	"sort"
	"time"
)

// Note is a free-form text entry, optionally tagged with a subject
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	SubjectID string    `json:"subject_id,omitempty"`
	Color     string    `json:"color"`
	Pinned    bool      `json:"pinned,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SortNotes orders notes for display: pinned before unpinned, then
// most-recently-updated first within each group.
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Pinned != notes[j].Pinned {
			return notes[i].Pinned
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}
