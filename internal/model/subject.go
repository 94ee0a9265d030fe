package model

// Subject is a user-defined category referenced by tasks and notes.
// Deleting a subject cascade-deletes the tasks that reference it.
type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
