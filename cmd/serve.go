package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thesumanshah/tfnsw-assistant/pkg/api"
	"github.com/thesumanshah/tfnsw-assistant/pkg/metrics"
	"github.com/thesumanshah/tfnsw-assistant/pkg/telegram"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and Telegram webhook",
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetString("listen")

		s, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		server := &api.Server{
			Extractor: s.extractor,
			Resolver:  s.resolver,
			Offline:   s.offline,
			Metrics:   metrics.New(),
			Clock:     s.clock,
		}

		if env.TelegramToken != "" {
			server.Telegram = telegram.NewBot(env.TelegramToken, s.extractor, s.resolver, s.clock)
		} else {
			log.Info().Msg("TELEGRAM_BOT_TOKEN not set, telegram webhook disabled")
		}

		log.Info().Str("listen", listen).Msg("Starting HTTP server")
		return server.Listen(listen)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "listen target for the web server")
}
