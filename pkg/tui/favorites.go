package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"github.com/thesumanshah/tfnsw-assistant/pkg/chat"
	"github.com/thesumanshah/tfnsw-assistant/pkg/exporter"
	"github.com/thesumanshah/tfnsw-assistant/pkg/favorites"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

const exportChoice = "__export__"

// favoriteLabel renders a saved route for a select option.
func favoriteLabel(f favorites.FavoriteRoute) string {
	return fmt.Sprintf("%s → %s (%s)", f.From, f.To, f.Mode)
}

// RunFavoritesTUI lists saved routes and lets the user search, remove or
// export them.
func RunFavoritesTUI(ctx context.Context, app *App) error {
	if app.Favorites == nil {
		fmt.Println(errorStyle.Render("Favourites are not available."))
		return nil
	}

	for {
		saved := app.Favorites.List()
		if len(saved) == 0 {
			fmt.Println(accentStyle.Render("\nNo favourite routes yet. Use 🔔 on a journey listing to add one.\n"))
			return nil
		}

		options := make([]huh.Option[string], 0, len(saved)+2)
		for _, f := range saved {
			options = append(options, huh.NewOption(favoriteLabel(f), f.ID))
		}
		options = append(options,
			huh.NewOption("📅 Export next journeys to calendar", exportChoice),
			huh.NewOption("Back to Main Menu", ""),
		)

		var selected string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Favourite Routes").
					Options(options...).
					Value(&selected),
			),
		).WithTheme(GetTheme())

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch selected {
		case "":
			return nil
		case exportChoice:
			if err := exportFavorites(ctx, app, saved); err != nil {
				fmt.Println(errorStyle.Render(fmt.Sprintf("Failed to export ICS: %v", err)))
			}
			continue
		}

		if err := runFavoriteActions(ctx, app, saved, selected); err != nil {
			return err
		}
	}
}

func runFavoriteActions(ctx context.Context, app *App, saved []favorites.FavoriteRoute, id string) error {
	var fav favorites.FavoriteRoute
	for _, f := range saved {
		if f.ID == id {
			fav = f
		}
	}

	var action string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(favoriteLabel(fav)).
				Options(
					huh.NewOption("🔍 Search now", "search"),
					huh.NewOption("🗑️ Remove", "remove"),
					huh.NewOption("Back", "back"),
				).
				Value(&action),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	switch action {
	case "search":
		var reply chat.Message
		_ = spinner.New().
			Title(fmt.Sprintf("Searching %s...", favoriteLabel(fav))).
			Action(func() {
				reply = app.Session.Search(ctx, fav.Route())
			}).
			Run()

		fmt.Println(RenderMessage(reply))
		return runJourneyActions(ctx, app, reply)
	case "remove":
		if err := app.Favorites.Remove(ctx, fav.ID); err != nil {
			return fmt.Errorf("failed to remove favourite: %w", err)
		}
		fmt.Println(accentStyle.Render(fmt.Sprintf("\nRemoved %s from your favourites.\n", favoriteLabel(fav))))
	}
	return nil
}

func exportFavorites(ctx context.Context, app *App, saved []favorites.FavoriteRoute) error {
	if app.Trips == nil {
		return errors.New("no trip planner configured")
	}

	routes := make([]journey.Route, 0, len(saved))
	for _, f := range saved {
		routes = append(routes, f.Route())
	}

	var results []*journey.QueryResult
	var err error

	_ = spinner.New().
		Title(fmt.Sprintf("Planning %d favourite routes...", len(routes))).
		Action(func() {
			results, err = exporter.CollectJourneys(ctx, app.Trips, routes)
		}).
		Run()

	if err != nil {
		return err
	}

	now := app.Clock.Now()
	filename := fmt.Sprintf("Favourite_Journeys_%s.ics", now.Format("20060102_150405"))

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create ics file: %w", err)
	}
	defer file.Close()

	count, err := exporter.GenerateICS(results, now, file)
	if err != nil {
		return err
	}

	fmt.Printf("\n✨ Successfully exported %d journeys to: %s\n", count, filename)
	return nil
}
