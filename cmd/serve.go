package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/engineeringstudentstrieste/est-services/api"
	"github.com/engineeringstudentstrieste/est-services/api/services"
	"github.com/engineeringstudentstrieste/est-services/db"
	"github.com/engineeringstudentstrieste/est-services/internal/authn"
	awsclient "github.com/engineeringstudentstrieste/est-services/internal/aws"
	"github.com/engineeringstudentstrieste/est-services/internal/content"
	"github.com/engineeringstudentstrieste/est-services/internal/revocation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	host string
	port int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Set up logging and load the config
		commonSetUp()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		siteDB := initializeDatabase(ctx)
		defer siteDB.Close()

		revoker, closeRevoker := initializeRevoker(ctx)
		defer closeRevoker()

		siteContent, err := content.LoadFile(appCfg.Site.ContentPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load site content")
		}

		service := &services.Service{
			Config:  appCfg,
			DB:      siteDB,
			Tokens:  authn.NewTokenIssuer(secretOrRandom(appCfg.Auth.TokenSecret, "JWT_SECRET"), appCfg.Auth.TTL(), appCfg.Auth.Issuer),
			Revoker: revoker,
			Content: siteContent,
		}

		// Contact notifications are optional
		if appCfg.Contact.EmailEnabled() {
			awsCfg, err := awsclient.LoadAWSConfig(ctx, appCfg.AWS.Region)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to load AWS config")
			}
			service.Email = awsclient.NewSESClient(awsCfg)
			log.Info().Str("region", appCfg.AWS.Region).Msg("Contact notifications enabled")
		}

		addr := listenAddr(host, port, appCfg.Host, appCfg.Port)
		if err := runServer(ctx, addr, api.NewRouter(service)); err != nil {
			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "", "host to run the server on (default from config)")
	serveCmd.Flags().IntVar(&port, "port", 0, "port to run the server on (default from config)")
}

// initializeDatabase opens the database. An unreachable server is only
// logged: the health routes report it and DB-backed routes fail on their own.
func initializeDatabase(ctx context.Context) *db.SiteDB {
	siteDB, err := db.NewSiteDB(appCfg.Database.Driver, appCfg.Database.Source, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	if err := siteDB.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("Database is not reachable, continuing without it")
	} else {
		log.Info().Msg("Connected to database")
	}

	return siteDB
}

// initializeRevoker uses Redis when configured and process memory otherwise.
func initializeRevoker(ctx context.Context) (revocation.Revoker, func()) {
	if appCfg.Redis.URL == "" {
		log.Info().Msg("Keeping token revocations in memory")
		return revocation.NewMemoryRevoker(), func() {}
	}

	revoker, err := revocation.NewRedisRevokerFromURL(ctx, appCfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	return revoker, func() {
		if err := revoker.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}
