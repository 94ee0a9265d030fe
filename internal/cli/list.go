package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/iplan/internal/model"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, optionally filtered by subject.

Examples:
  iplan list
  iplan list --subject Math
  iplan list --done`,
	RunE: runList,
}

var (
	listSubject     string
	listIncludeDone bool
)

func init() {
	listCmd.Flags().StringVarP(&listSubject, "subject", "S", "", "Filter by subject")
	listCmd.Flags().BoolVar(&listIncludeDone, "done", false, "Include completed tasks")
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	st := app.Store.State()

	var filterID string
	if listSubject != "" {
		sub, ok := findSubject(st, listSubject)
		if !ok {
			return fmt.Errorf("subject not found: %s", listSubject)
		}
		filterID = sub.ID
	}

	names := make(map[string]string, len(st.Subjects))
	for _, sub := range st.Subjects {
		names[sub.ID] = sub.Name
	}

	shown := 0
	for _, t := range st.Tasks {
		if filterID != "" && t.SubjectID != filterID {
			continue
		}
		if t.Status == model.StatusCompleted && !listIncludeDone {
			continue
		}
		printTask(t, names[t.SubjectID])
		shown++
	}

	if shown == 0 {
		fmt.Println("No tasks found. Add one with: iplan add \"Your task\" --subject <name>")
	}
	return nil
}

func printTask(t model.Task, subjectName string) {
	marker := "○"
	title := t.Title
	switch t.Status {
	case model.StatusCompleted:
		marker = "✓"
		title = completedStyle.Render(title)
	case model.StatusDelayed:
		marker = "!"
		title = delayedStyle.Render(title)
	}

	line := fmt.Sprintf("%s %s %s  %s",
		marker,
		statLabelStyle.Render(shortID(t.ID)),
		priorityStyle(string(t.Priority)).Render(fmt.Sprintf("[%s]", t.Priority)),
		title)
	if subjectName != "" {
		line += statLabelStyle.Render("  #" + subjectName)
	}
	if t.DueDate != "" {
		line += statLabelStyle.Render("  due " + t.DueDate)
	}
	fmt.Println(line)
}
