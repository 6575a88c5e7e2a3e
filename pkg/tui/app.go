package tui

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/thesumanshah/tfnsw-assistant/pkg/chat"
	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/config"
	"github.com/thesumanshah/tfnsw-assistant/pkg/exporter"
	"github.com/thesumanshah/tfnsw-assistant/pkg/favorites"
	"github.com/thesumanshah/tfnsw-assistant/pkg/stations"
)

// defaultAccent is the TfNSW blue.
const defaultAccent = "33"

var (
	// These act as fallbacks initially, but should ideally be dynamically instantiated by GetTheme()
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// App bundles what the interactive screens need.
type App struct {
	Session   *chat.Session
	Gazetteer *stations.Gazetteer
	Favorites *favorites.Set
	// Trips plans favourite routes for calendar export.
	Trips exporter.Resolver
	Clock clock.Clock
}

// GetTheme loads the user's saved accent color and constructs the UI theme.
func GetTheme() *huh.Theme {
	cfg, err := config.Load()
	baseColor := defaultAccent

	if err == nil && cfg != nil && cfg.AccentColor != "" {
		baseColor = cfg.AccentColor
	}

	// Update the global lipgloss accent so manual CLI print statements also receive the color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	return GetCustomTheme(baseColor)
}

// GetCustomTheme returns a new huh.Theme instantiated with the provided lipgloss color string.
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "235"})
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	// Softer borders for unfocused elements
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// RunTUI launches the main menu and returns when the user picks Quit.
func RunTUI(ctx context.Context, app *App) error {
	for {
		var action string

		offlineLabel := "📴 Switch to Offline Timetable"
		if app.Session.Offline() {
			offlineLabel = "📶 Switch to Live Trip Planner"
		}

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What would you like to do?").
					Options(
						huh.NewOption("💬 Ask the Assistant", "chat"),
						huh.NewOption("🚉 Pick Stations", "picker"),
						huh.NewOption("⭐ Favourite Routes", "favorites"),
						huh.NewOption(offlineLabel, "offline"),
						huh.NewOption("⚙️ Settings", "config"),
						huh.NewOption("Quit", "quit"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		var err error
		switch action {
		case "chat":
			err = RunChatTUI(ctx, app)
		case "picker":
			err = RunStationPickerTUI(ctx, app)
		case "favorites":
			err = RunFavoritesTUI(ctx, app)
		case "offline":
			app.Session.SetOffline(!app.Session.Offline())
			printMode(app.Session)
		case "config":
			err = RunConfigTUI()
		case "quit":
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func printMode(s *chat.Session) {
	if s.Offline() {
		accentPrintln("\nOffline mode: answers come from the built-in timetable.\n")
		return
	}
	accentPrintln("\nLive mode: answers come from the Transport for NSW trip planner.\n")
}
