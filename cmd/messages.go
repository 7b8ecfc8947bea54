package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/engineeringstudentstrieste/est-services/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var messagesLimit int

var messagesCmd = &cobra.Command{
	Use:   "contact-messages",
	Short: "List the latest contact form messages",
	Run: func(cmd *cobra.Command, args []string) {

		// Set up logging and load the config
		commonSetUp()

		siteDB, err := db.NewSiteDB(appCfg.Database.Driver, appCfg.Database.Source, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer siteDB.Close()

		messages, err := siteDB.ListContactMessages(cmd.Context(), messagesLimit)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to list contact messages")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RECEIVED\tNAME\tEMAIL\tMESSAGE")
		for _, m := range messages {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Email, summarize(m.Message, 60))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(messagesCmd)
	messagesCmd.Flags().IntVar(&messagesLimit, "limit", 20, "number of messages to show")
}

// summarize keeps the first line of s, cut to n runes.
func summarize(s string, n int) string {
	s, _, _ = strings.Cut(s, "\n")
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}
