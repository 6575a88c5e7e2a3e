package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"github.com/thesumanshah/tfnsw-assistant/pkg/chat"
	"github.com/thesumanshah/tfnsw-assistant/pkg/config"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

// ErrSameStation rejects a pick whose origin and destination coincide.
var ErrSameStation = errors.New("origin and destination must be different stations")

// modeOptions lists the transport modes as select options.
func modeOptions() []huh.Option[journey.Mode] {
	labels := map[journey.Mode]string{
		journey.ModeTrain: "🚆 Train",
		journey.ModeMetro: "🚇 Metro",
		journey.ModeBus:   "🚌 Bus",
		journey.ModeFerry: "⛴️ Ferry",
	}

	options := make([]huh.Option[journey.Mode], 0, len(journey.Modes))
	for _, m := range journey.Modes {
		options = append(options, huh.NewOption(labels[m], m))
	}
	return options
}

// validatePick checks a from/to pair before searching.
func validatePick(from, to string) error {
	if from == "" || to == "" {
		return errors.New("choose both stations")
	}
	if from == to {
		return ErrSameStation
	}
	return nil
}

// RunStationPickerTUI asks for origin, destination and mode from the
// gazetteer and searches that route directly.
func RunStationPickerTUI(ctx context.Context, app *App) error {
	names := app.Gazetteer.Names()
	if len(names) == 0 {
		fmt.Println(errorStyle.Render("No stations are available."))
		return nil
	}

	mode := journey.ModeTrain
	if cfg, err := config.Load(); err == nil {
		mode = cfg.Mode()
	}

	var from, to string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("From").
				Description("Type / to filter.").
				Options(huh.NewOptions(names...)...).
				Height(10).
				Value(&from),

			huh.NewSelect[string]().
				Title("To").
				Options(huh.NewOptions(names...)...).
				Height(10).
				Value(&to).
				Validate(func(v string) error {
					return validatePick(from, v)
				}),

			huh.NewSelect[journey.Mode]().
				Title("Mode").
				Options(modeOptions()...).
				Value(&mode),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	route := journey.Route{From: from, To: to, Mode: mode}

	var reply chat.Message
	_ = spinner.New().
		Title(fmt.Sprintf("Searching %s services from %s to %s...", mode, from, to)).
		Action(func() {
			reply = app.Session.Search(ctx, route)
		}).
		Run()

	fmt.Println(RenderMessage(reply))

	return runJourneyActions(ctx, app, reply)
}
