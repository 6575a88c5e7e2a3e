package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/thesumanshah/tfnsw-assistant/pkg/exporter"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export upcoming journeys to an ICS file",
	Long:  `Plan a route, or every favourite route, and write the upcoming journeys to an .ics calendar file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		mode, _ := cmd.Flags().GetString("mode")
		output, _ := cmd.Flags().GetString("output")
		useFavorites, _ := cmd.Flags().GetBool("favorites")
		offlineMode, _ := cmd.Flags().GetBool("offline")

		if !useFavorites && (from == "" || to == "") {
			return fmt.Errorf("either --from and --to or --favorites is required")
		}

		s, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		var routes []journey.Route
		if useFavorites {
			for _, f := range s.favorites.List() {
				routes = append(routes, f.Route())
			}
			if len(routes) == 0 {
				return fmt.Errorf("no favourite routes saved")
			}
		} else {
			routes = []journey.Route{{From: from, To: to, Mode: journey.ParseMode(mode)}}
		}

		var results []*journey.QueryResult

		_ = spinner.New().
			Title(fmt.Sprintf("Planning %d routes for %s...", len(routes), output)).
			Action(func() {
				results, err = exporter.CollectJourneys(cmd.Context(), s.trips(offlineMode), routes)
			}).
			Run()

		if err != nil {
			return fmt.Errorf("failed to plan journeys: %w", err)
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		count, err := exporter.GenerateICS(results, s.clock.Now(), file)
		if err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d journeys to %s\n", count, output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("from", "f", "", "Origin station")
	exportCmd.Flags().StringP("to", "t", "", "Destination station")
	exportCmd.Flags().StringP("mode", "m", "train", "Transport mode")
	exportCmd.Flags().Bool("favorites", false, "Export the next journeys of every favourite route")
	exportCmd.Flags().Bool("offline", false, "Use the built-in timetable instead of the live trip planner")
	exportCmd.Flags().StringP("output", "o", "journeys.ics", "Output file path")
}
