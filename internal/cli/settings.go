package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/iplan/internal/model"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change profile and display settings",
	Long: `Show or change your display name, language, and theme. These are part
of the synced state, so they follow you across devices.

Examples:
  iplan settings
  iplan settings --name "Dana K" --theme dark
  iplan settings --language ru`,
	RunE: runSettings,
}

var (
	settingsName     string
	settingsLanguage string
	settingsTheme    string
)

func init() {
	settingsCmd.Flags().StringVar(&settingsName, "name", "", "Display name")
	settingsCmd.Flags().StringVar(&settingsLanguage, "language", "", "Language: en, ar, ru")
	settingsCmd.Flags().StringVar(&settingsTheme, "theme", "", "Theme: light, dark")
}

func runSettings(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	changed := false

	if settingsName != "" {
		profile := app.Store.State().User
		profile.Name = settingsName
		if err := app.Store.UpdateUser(profile); err != nil {
			return err
		}
		changed = true
	}

	if settingsLanguage != "" {
		switch lang := model.Language(settingsLanguage); lang {
		case model.LanguageEnglish, model.LanguageArabic, model.LanguageRussian:
			if err := app.Store.SetLanguage(lang); err != nil {
				return err
			}
			changed = true
		default:
			return fmt.Errorf("unknown language %q, expected en, ar, or ru", settingsLanguage)
		}
	}

	if settingsTheme != "" {
		switch theme := model.Theme(settingsTheme); theme {
		case model.ThemeLight, model.ThemeDark:
			if err := app.Store.SetTheme(theme); err != nil {
				return err
			}
			changed = true
		default:
			return fmt.Errorf("unknown theme %q, expected light or dark", settingsTheme)
		}
	}

	st := app.Store.State()
	if changed {
		fmt.Println("✓ Settings updated")
	}
	fmt.Printf("Name:     %s\n", st.User.Name)
	if st.User.Email != "" {
		fmt.Printf("Email:    %s\n", st.User.Email)
	}
	fmt.Printf("Language: %s\n", st.Language)
	fmt.Printf("Theme:    %s\n", st.Theme)
	return nil
}
