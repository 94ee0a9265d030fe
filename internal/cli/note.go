package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/model"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
	Long:  `Create, list, pin, and delete notes. Creating a note earns XP.`,
}

var noteAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a note",
	Long: `Create a note.

Examples:
  iplan note add "Chain rule" --body "d/dx f(g(x)) = f'(g(x))g'(x)" -S Math
  iplan note add "Groceries" --body "milk, eggs"`,
	Args: cobra.ExactArgs(1),
	RunE: runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes, pinned first",
	RunE:    runNoteList,
}

var notePinCmd = &cobra.Command{
	Use:   "pin [note-id]",
	Short: "Pin or unpin a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotePin,
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete [note-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteDelete,
}

var (
	noteBody    string
	noteSubject string
	noteColor   string
)

func init() {
	noteAddCmd.Flags().StringVar(&noteBody, "body", "", "Note body")
	noteAddCmd.Flags().StringVarP(&noteSubject, "subject", "S", "", "Subject name or id")
	noteAddCmd.Flags().StringVarP(&noteColor, "color", "c", "#FFE66D", "Note color (hex)")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(notePinCmd)
	noteCmd.AddCommand(noteDeleteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	note := model.Note{Title: args[0], Body: noteBody, Color: noteColor}
	if noteSubject != "" {
		sub, ok := findSubject(app.Store.State(), noteSubject)
		if !ok {
			return fmt.Errorf("subject not found: %s", noteSubject)
		}
		note.SubjectID = sub.ID
	}

	created, err := app.Store.AddNote(note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	fmt.Printf("✓ Created note %s: \"%s\" (+%d XP)\n", shortID(created.ID), created.Title, gamify.RewardCreateNote)
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	st := app.Store.State()
	if len(st.Notes) == 0 {
		fmt.Println("No notes yet. Create one with: iplan note add \"Title\"")
		return nil
	}

	notes := append([]model.Note(nil), st.Notes...)
	model.SortNotes(notes)

	for _, n := range notes {
		pin := "  "
		if n.Pinned {
			pin = "📌"
		}
		fmt.Printf("%s %s %s %s\n",
			pin,
			statLabelStyle.Render(shortID(n.ID)),
			titleStyle.Render(n.Title),
			statLabelStyle.Render(n.UpdatedAt.Format("Jan 2 15:04")))
	}
	return nil
}

func runNotePin(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	id := resolveNoteID(app.Store.State().Notes, args[0])
	if id == "" {
		return fmt.Errorf("note not found: %s", args[0])
	}
	if err := app.Store.ToggleNotePin(id); err != nil {
		return fmt.Errorf("failed to pin note: %w", err)
	}

	fmt.Println("✓ Toggled pin")
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	id := resolveNoteID(app.Store.State().Notes, args[0])
	if id == "" {
		return fmt.Errorf("note not found: %s", args[0])
	}
	if err := app.Store.DeleteNote(id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	fmt.Println("🗑  Deleted note")
	return nil
}

func resolveNoteID(notes []model.Note, ref string) string {
	for _, n := range notes {
		if n.ID == ref {
			return n.ID
		}
	}
	match := ""
	for _, n := range notes {
		if len(ref) >= 4 && len(ref) < len(n.ID) && n.ID[:len(ref)] == ref {
			if match != "" {
				return "" // ambiguous
			}
			match = n.ID
		}
	}
	return match
}
