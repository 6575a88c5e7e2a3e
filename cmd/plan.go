package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/thesumanshah/tfnsw-assistant/pkg/chat"
	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/planner"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan a trip between two stations",
	Long:  `Query the trip planner for a route without going through the chat, printing the normalized journeys.`,
	Example: `  tfnsw-assistant plan --from Central --to Parramatta
  tfnsw-assistant plan -f "Town Hall" -t "Bondi Junction" --at 17:30 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		mode, _ := cmd.Flags().GetString("mode")
		at, _ := cmd.Flags().GetString("at")
		asJSON, _ := cmd.Flags().GetBool("json")
		debug, _ := cmd.Flags().GetBool("debug")
		offlineMode, _ := cmd.Flags().GetBool("offline")

		s, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		when, err := parseDeparture(at, s.clock.Now())
		if err != nil {
			return err
		}

		if mode == "" {
			mode = string(s.cfg.Mode())
		}

		req := journey.TripRequest{
			Route:    journey.Route{From: from, To: to, Mode: journey.ParseMode(mode)},
			Datetime: when,
		}

		res, err := s.trips(offlineMode).Resolve(cmd.Context(), req)

		var upstreamErr *planner.UpstreamError
		switch {
		case errors.Is(err, planner.ErrInvalidStation):
			return fmt.Errorf("%s: %w", chat.InvalidStationText, err)
		case errors.As(err, &upstreamErr):
			return fmt.Errorf("%s: %w", chat.UpstreamErrorText, err)
		case err != nil:
			return err
		}

		if debug {
			pretty.Println(res.Results)
		}

		if asJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(res)
		}

		if res.Empty() {
			fmt.Println(chat.NoResultsText)
			return nil
		}

		fmt.Println(chat.Summary(res))
		return nil
	},
}

// parseDeparture accepts an empty value (now), a Sydney wall-clock time
// "HH:MM" on the day of now, or an RFC 3339 timestamp.
func parseDeparture(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	if t, err := time.ParseInLocation("15:04", value, clock.Sydney); err == nil {
		day := now.In(clock.Sydney)
		return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, clock.Sydney), nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid departure time %q: use HH:MM or RFC 3339", value)
	}
	return t, nil
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringP("from", "f", "", "Origin station (e.g. Central)")
	planCmd.Flags().StringP("to", "t", "", "Destination station (e.g. Parramatta)")
	planCmd.Flags().StringP("mode", "m", "", "Transport mode: train, metro, bus or ferry (defaults to the configured mode)")
	planCmd.Flags().String("at", "", "Departure time as HH:MM (Sydney) or RFC 3339; defaults to now")
	planCmd.Flags().Bool("json", false, "Print the result as JSON")
	planCmd.Flags().Bool("debug", false, "Dump the normalized journeys")
	planCmd.Flags().Bool("offline", false, "Answer from the built-in timetable instead of the live trip planner")
	planCmd.MarkFlagRequired("from")
	planCmd.MarkFlagRequired("to")
}
