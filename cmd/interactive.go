package cmd

import (
	"github.com/spf13/cobra"

	"github.com/thesumanshah/tfnsw-assistant/pkg/tui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to chat with the assistant, pick stations, manage favourite routes and change settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		offlineMode, _ := cmd.Flags().GetBool("offline")

		s, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		return tui.RunTUI(cmd.Context(), s.tuiApp(offlineMode))
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the journey assistant",
	Long:  `Ask free-text questions such as "Next train from Central to Parramatta" and act on the journeys returned.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		offlineMode, _ := cmd.Flags().GetBool("offline")

		s, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		return tui.RunChatTUI(cmd.Context(), s.tuiApp(offlineMode))
	},
}

var pickerCmd = &cobra.Command{
	Use:   "picker",
	Short: "Pick origin, destination and mode from the station list",
	RunE: func(cmd *cobra.Command, args []string) error {
		offlineMode, _ := cmd.Flags().GetBool("offline")

		s, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		return tui.RunStationPickerTUI(cmd.Context(), s.tuiApp(offlineMode))
	},
}

func init() {
	for _, c := range []*cobra.Command{interactiveCmd, chatCmd, pickerCmd} {
		c.Flags().Bool("offline", false, "Answer from the built-in timetable instead of the live trip planner")
		rootCmd.AddCommand(c)
	}
}
