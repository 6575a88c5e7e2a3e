package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/thesumanshah/tfnsw-assistant/pkg/config"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/offline"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Default Mode (Station Picker)", "mode"),
						huh.NewOption("Set Favourites Storage", "backend"),
						huh.NewOption("Set Offline Timetable File", "schedule"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "mode":
			err = runSetModeTUI(cfg)
		case "backend":
			err = runSetBackendTUI(cfg)
		case "schedule":
			err = runSetScheduleTUI(cfg)
		case "view":
			fmt.Println(describeConfig(cfg))
		}

		if err != nil {
			return err
		}
	}
}

func describeConfig(cfg *config.AppConfig) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render("\n--- Current Configuration (~/.tfnsw-assistant.json) ---"))
	b.WriteString("\n")

	accent := cfg.AccentColor
	if accent == "" {
		accent = defaultAccent + " (default)"
	}
	fmt.Fprintf(&b, "Accent Color: %s\n", accent)
	fmt.Fprintf(&b, "Default Mode: %s\n", cfg.Mode())
	fmt.Fprintf(&b, "Favourites Storage: %s\n", cfg.Backend())

	if cfg.OfflineSchedulePath == "" {
		b.WriteString("Offline Timetable: built-in\n")
	} else {
		fmt.Fprintf(&b, "Offline Timetable: %s\n", cfg.OfflineSchedulePath)
	}
	return b.String()
}

func runSetModeTUI(cfg *config.AppConfig) error {
	selected := cfg.Mode()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[journey.Mode]().
				Title("Select the mode the station picker starts with").
				Options(modeOptions()...).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.DefaultMode = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Default mode changed to: %s\n", selected)))
	return nil
}

func runSetBackendTUI(cfg *config.AppConfig) error {
	selected := cfg.Backend()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should favourite routes be stored?").
				Description("Redis uses TFNSW_REDIS_ADDRESS, TFNSW_REDIS_PASSWORD and TFNSW_REDIS_DATABASE.").
				Options(
					huh.NewOption("Local file (~/.tfnsw-assistant-favorites.json)", config.FavoritesFile),
					huh.NewOption("Redis", config.FavoritesRedis),
				).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.FavoritesBackend = selected
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Favourites storage changed to: %s (takes effect on next start)\n", selected)))
	return nil
}

// validateSchedule accepts an empty path (built-in table) or a readable
// schedule file.
func validateSchedule(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s", path)
	}
	if _, err := offline.Load(path); err != nil {
		return err
	}
	return nil
}

func runSetScheduleTUI(cfg *config.AppConfig) error {
	path := cfg.OfflineSchedulePath

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Offline timetable file").
				Description("A YAML timetable. Leave empty to use the built-in one.").
				Value(&path).
				Validate(validateSchedule),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.OfflineSchedulePath = strings.TrimSpace(path)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Offline timetable saved.\n"))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color").
				Description("Select a curated style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Waratah Red", colorBlock("160")), "160"),
					huh.NewOption(fmt.Sprintf("%s Harbour Blue", colorBlock(defaultAccent)), defaultAccent),
					huh.NewOption(fmt.Sprintf("%s Metro Teal", colorBlock("30")), "30"),
					huh.NewOption(fmt.Sprintf("%s Ferry Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(validateHex),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ Beautiful! The theme color is now saved.\n"))
	return nil
}

func validateHex(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	for _, r := range str[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fmt.Errorf("must be a valid 6-character hex code starting with #")
		}
	}
	return nil
}
