package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thesumanshah/tfnsw-assistant/pkg/tui"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the answer",
	Example: `  tfnsw-assistant ask "Next train from Central to Chatswood"
  tfnsw-assistant ask --offline from Town Hall to Bondi Junction`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		offlineMode, _ := cmd.Flags().GetBool("offline")

		s, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		session := s.session(offlineMode)
		reply := session.Submit(cmd.Context(), strings.Join(args, " "))

		fmt.Println(tui.RenderMessage(reply))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().Bool("offline", false, "Answer from the built-in timetable instead of the live trip planner")
}
