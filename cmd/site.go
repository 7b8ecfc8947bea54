package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/engineeringstudentstrieste/est-services/internal/apiclient"
	"github.com/engineeringstudentstrieste/est-services/internal/content"
	"github.com/engineeringstudentstrieste/est-services/internal/site"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	siteHost string
	sitePort int
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Run the association website",
	Long:  `Serves the server-rendered website. Logins and contact messages are forwarded to the API at API_URL.`,
	Run: func(cmd *cobra.Command, args []string) {

		// Set up logging and load the config
		commonSetUp()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		siteContent, err := content.LoadFile(appCfg.Site.ContentPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load site content")
		}

		srv, err := site.NewServer(
			siteContent,
			apiclient.NewClient(appCfg.Site.APIURL),
			secretOrRandom(appCfg.Site.SessionSecret, "SESSION_SECRET"),
			appCfg.Site.CookieName,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize site")
		}

		log.Info().Str("api_url", appCfg.Site.APIURL).Msg("Forwarding logins to API")

		addr := listenAddr(siteHost, sitePort, appCfg.Site.Host, appCfg.Site.Port)
		if err := runServer(ctx, addr, srv.Handler()); err != nil {
			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(siteCmd)
	siteCmd.Flags().StringVar(&siteHost, "host", "", "host to run the site on (default from config)")
	siteCmd.Flags().IntVar(&sitePort, "port", 0, "port to run the site on (default from config)")
}
