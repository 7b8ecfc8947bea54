package cmd

import (
	"github.com/engineeringstudentstrieste/est-services/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "init-db-migrate",
	Short: "Initialize tables and run database migrations",
	Long:  `This job ensures tables exist and then runs goose migrations.`,
	Run: func(cmd *cobra.Command, args []string) {

		// Set up logging and load the config
		commonSetUp()

		siteDB, err := db.NewSiteDB(appCfg.Database.Driver, appCfg.Database.Source, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer siteDB.Close()

		if err := siteDB.Ping(cmd.Context()); err != nil {
			log.Fatal().Err(err).Msg("Database is not reachable")
		}

		// Run the migrations
		log.Info().Msgf("Running migrations...")
		if err := siteDB.Migrate(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		log.Info().Msg("Migrations complete")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
