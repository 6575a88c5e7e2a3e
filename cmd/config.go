package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesumanshah/tfnsw-assistant/pkg/config"
	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
	"github.com/thesumanshah/tfnsw-assistant/pkg/offline"
	"github.com/thesumanshah/tfnsw-assistant/pkg/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tfnsw-assistant configuration",
	Long:  "View or edit your local configuration settings (theme, default mode, favourites storage, offline timetable).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		changed := false

		if cmd.Flags().Changed("mode") {
			mode, _ := cmd.Flags().GetString("mode")
			m := journey.Mode(mode)
			if !m.Valid() {
				return fmt.Errorf("unknown mode %q: use train, metro, bus or ferry", mode)
			}
			cfg.DefaultMode = m
			changed = true
		}

		if cmd.Flags().Changed("favorites-backend") {
			backend, _ := cmd.Flags().GetString("favorites-backend")
			if backend != config.FavoritesFile && backend != config.FavoritesRedis {
				return fmt.Errorf("unknown favourites backend %q: use file or redis", backend)
			}
			cfg.FavoritesBackend = backend
			changed = true
		}

		if cmd.Flags().Changed("offline-schedule") {
			path, _ := cmd.Flags().GetString("offline-schedule")
			if path != "" {
				if _, err := offline.Load(path); err != nil {
					return err
				}
			}
			cfg.OfflineSchedulePath = path
			changed = true
		}

		if changed {
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Println("✅ Configuration saved.")
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().String("mode", "", "Set the default transport mode")
	configCmd.Flags().String("favorites-backend", "", "Store favourites in a local file or redis")
	configCmd.Flags().String("offline-schedule", "", "Use this YAML timetable when offline (empty for the built-in one)")
}
