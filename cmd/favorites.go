package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"favourites", "fav"},
	Short:   "Manage favourite routes",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favourite routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		saved := s.favorites.List()
		if len(saved) == 0 {
			fmt.Println("No favourite routes yet.")
			return nil
		}

		idStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		for _, f := range saved {
			fmt.Printf("• %s → %s (%s) %s\n", f.From, f.To, f.Mode, idStyle.Render(f.ID))
		}
		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a favourite route",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		mode, _ := cmd.Flags().GetString("mode")

		s, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		station, ok := s.gazetteer.Lookup(from)
		if !ok {
			return fmt.Errorf("unknown station %q", from)
		}
		dest, ok := s.gazetteer.Lookup(to)
		if !ok {
			return fmt.Errorf("unknown station %q", to)
		}

		route := journey.Route{From: station.Name, To: dest.Name, Mode: journey.ParseMode(mode)}
		if err := s.favorites.Add(cmd.Context(), route); err != nil {
			return err
		}

		fmt.Printf("✅ Added %s → %s to your favourites.\n", route.From, route.To)
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a favourite route by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.favorites.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Printf("Removed %s from your favourites.\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd)

	favoritesAddCmd.Flags().StringP("from", "f", "", "Origin station")
	favoritesAddCmd.Flags().StringP("to", "t", "", "Destination station")
	favoritesAddCmd.Flags().StringP("mode", "m", "train", "Transport mode")
	favoritesAddCmd.MarkFlagRequired("from")
	favoritesAddCmd.MarkFlagRequired("to")
}
