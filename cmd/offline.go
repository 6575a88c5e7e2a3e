package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesumanshah/tfnsw-assistant/pkg/chat"
	"github.com/thesumanshah/tfnsw-assistant/pkg/clock"
	"github.com/thesumanshah/tfnsw-assistant/pkg/config"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/offline"
)

var offlineCmd = &cobra.Command{
	Use:   "offline",
	Short: "Inspect and query the built-in timetable",
}

var offlineRoutesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the routes the offline timetable knows",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		fmt.Printf("%s\n\n", table.Line)
		for _, key := range table.Keys() {
			fmt.Printf("• %s (%d services)\n", key, len(table.Routes[key]))
		}
		fmt.Println("\nOther routes use a generic timetable every 20 minutes from 06:00.")
		return nil
	},
}

var offlinePlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the next services from the offline timetable",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		table, err := loadTable()
		if err != nil {
			return err
		}

		res := offline.NewResolver(table, clock.RealClock{}).Resolve(journey.Route{From: from, To: to, Mode: journey.ModeTrain})
		fmt.Println(chat.Summary(res))
		return nil
	},
}

// loadTable reads the configured timetable file or the embedded one.
func loadTable() (*offline.Table, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.OfflineSchedulePath == "" {
		return offline.Default(), nil
	}
	return offline.Load(cfg.OfflineSchedulePath)
}

func init() {
	rootCmd.AddCommand(offlineCmd)
	offlineCmd.AddCommand(offlineRoutesCmd, offlinePlanCmd)

	offlinePlanCmd.Flags().StringP("from", "f", "", "Origin station")
	offlinePlanCmd.Flags().StringP("to", "t", "", "Destination station")
	offlinePlanCmd.MarkFlagRequired("from")
	offlinePlanCmd.MarkFlagRequired("to")
}
