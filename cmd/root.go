/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"crypto/rand"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/engineeringstudentstrieste/est-services/internal/appconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	appCfg     *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:           "est-services",
	Short:         "Engineering Students Trieste services",
	Long:          `est-services runs the association's REST API and website, and lets members log in from the command line.`,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML config file (defaults to the built-in config driven by environment variables)")
}

// commonSetUp sets up logging and loads the config.
func commonSetUp() {
	setLogging(logLevel)

	cfg, err := appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	appCfg = cfg
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}

// secretOrRandom returns secret, or a random key that only lives as long as
// the process when none is configured.
func secretOrRandom(secret, name string) []byte {
	if secret != "" {
		return []byte(secret)
	}

	log.Warn().Str("setting", name).Msg("no secret configured, using a random one: sessions will not survive a restart")
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatal().Err(err).Msg("failed to generate secret")
	}
	return key
}

// listenAddr prefers the flag values over the config.
func listenAddr(flagHost string, flagPort int, cfgHost string, cfgPort int) string {
	if flagHost == "" {
		flagHost = cfgHost
	}
	if flagPort == 0 {
		flagPort = cfgPort
	}
	return fmt.Sprintf("%s:%d", flagHost, flagPort)
}
