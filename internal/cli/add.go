package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/iplan/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to a subject.

Examples:
  iplan add "Finish problem set" --subject Math
  iplan add "Revise essay" -S History -p high -d tomorrow
  iplan add "Book dentist" -S Personal -d 2026-09-15`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addSubject     string
	addPriority    string
	addDue         string
	addDescription string
)

func init() {
	addCmd.Flags().StringVarP(&addSubject, "subject", "S", "", "Subject name or id (required)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "Priority: high, medium, low")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "Due date: today, tomorrow, or YYYY-MM-DD")
	addCmd.Flags().StringVar(&addDescription, "desc", "", "Task description")
	_ = addCmd.MarkFlagRequired("subject")
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	sub, ok := findSubject(app.Store.State(), addSubject)
	if !ok {
		return fmt.Errorf("subject not found: %s (create it with: iplan subject new)", addSubject)
	}

	task := model.NewTask("", sub.ID, args[0])
	task.Description = addDescription
	task.Priority = model.Priority(addPriority)

	switch addDue {
	case "":
		task.DueType = model.DueOpen
	case "today":
		task.DueType = model.DueToday
	case "tomorrow":
		task.DueType = model.DueTomorrow
	default:
		if _, err := time.Parse(model.DateLayout, addDue); err != nil {
			return fmt.Errorf("invalid due date %q, expected today, tomorrow, or YYYY-MM-DD", addDue)
		}
		task.DueType = model.DueSpecific
		task.DueDate = addDue
	}

	created, err := app.Store.AddTask(task)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("✓ Added task %s to %s: \"%s\"\n", shortID(created.ID), sub.Name, created.Title)
	if created.DueDate != "" {
		fmt.Printf("  Due: %s\n", created.DueDate)
	}
	return nil
}
