package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thesumanshah/tfnsw-assistant/pkg/config"
)

// env is read once before any command runs.
var env *config.Environment

var rootCmd = &cobra.Command{
	Use:   "tfnsw-assistant",
	Short: "A conversational CLI for NSW train journeys",
	Long: `tfnsw-assistant answers questions like "Next train from Central to Parramatta"
with live journeys from the Transport for NSW trip planner, falling back to a
built-in timetable when offline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")

		var err error
		if envFile != "" {
			err = config.LoadDotEnv(envFile)
		} else {
			err = config.LoadDotEnv()
		}
		if err != nil {
			return err
		}

		env, err = config.ReadEnvironment()
		if err != nil {
			return err
		}

		setupLogging(env, cmd.Name() == "serve")
		return nil
	},
}

// setupLogging configures the global zerolog logger. Interactive commands
// only surface warnings unless debug logging is enabled.
func setupLogging(env *config.Environment, server bool) {
	if env.LogFormat != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	switch {
	case env.Debug:
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	case server:
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	default:
		log.Logger = log.Logger.Level(zerolog.WarnLevel)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file instead of ./.env")
}
