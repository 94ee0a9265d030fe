package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Manage subjects",
	Long:  `Create, list, and delete subjects for organizing tasks and notes.`,
}

var subjectNewCmd = &cobra.Command{
	Use:     "new [name]",
	Aliases: []string{"add"},
	Short:   "Create a new subject",
	Long: `Create a new subject.

Examples:
  iplan subject new "Math"
  iplan subject new "History" --color "#FF6B6B"`,
	Args: cobra.ExactArgs(1),
	RunE: runSubjectNew,
}

var subjectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all subjects",
	RunE:    runSubjectList,
}

var subjectDeleteCmd = &cobra.Command{
	Use:     "delete [subject]",
	Aliases: []string{"rm"},
	Short:   "Delete a subject and all of its tasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runSubjectDelete,
}

var subjectColor string

func init() {
	subjectNewCmd.Flags().StringVarP(&subjectColor, "color", "c", "#4ECDC4", "Subject color (hex)")

	subjectCmd.AddCommand(subjectNewCmd)
	subjectCmd.AddCommand(subjectListCmd)
	subjectCmd.AddCommand(subjectDeleteCmd)
}

func runSubjectNew(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	sub, err := app.Store.AddSubject(args[0], subjectColor)
	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}

	fmt.Printf("✓ Created subject %s: \"%s\"\n", shortID(sub.ID), sub.Name)
	return nil
}

func runSubjectList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	st := app.Store.State()
	if len(st.Subjects) == 0 {
		fmt.Println("No subjects yet. Create one with: iplan subject new \"Name\"")
		return nil
	}

	counts := make(map[string]int)
	for _, t := range st.Tasks {
		counts[t.SubjectID]++
	}

	for _, sub := range st.Subjects {
		fmt.Printf("%s %s %s\n",
			statLabelStyle.Render(shortID(sub.ID)),
			titleStyle.Render(sub.Name),
			statLabelStyle.Render(fmt.Sprintf("(%d tasks)", counts[sub.ID])))
	}
	return nil
}

func runSubjectDelete(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	st := app.Store.State()
	sub, ok := findSubject(st, args[0])
	if !ok {
		return fmt.Errorf("subject not found: %s", args[0])
	}

	cascade := 0
	for _, t := range st.Tasks {
		if t.SubjectID == sub.ID {
			cascade++
		}
	}

	if err := app.Store.DeleteSubject(sub.ID); err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	fmt.Printf("🗑  Deleted subject \"%s\" and %d tasks\n", sub.Name, cascade)
	return nil
}
