package cmd

import (
	"fmt"

	"github.com/engineeringstudentstrieste/est-services/internal/apiclient"
	"github.com/engineeringstudentstrieste/est-services/internal/session"
	"github.com/engineeringstudentstrieste/est-services/models"
	"github.com/spf13/cobra"
)

var (
	sessionFile   string
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:          "login",
	Short:        "Log in as a member",
	Long:         `Logs in against the API. When the API cannot be reached the member is kept locally and marked as not verified.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newSessionManager()
		if err != nil {
			return err
		}

		member, err := mgr.Login(cmd.Context(), loginEmail, loginPassword)
		if err != nil {
			return err
		}

		printMember(cmd, member)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:          "logout",
	Short:        "Forget the logged-in member",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newSessionManager()
		if err != nil {
			return err
		}

		if err := mgr.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:          "whoami",
	Short:        "Show the logged-in member",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newSessionManager()
		if err != nil {
			return err
		}

		member, err := mgr.Init(cmd.Context())
		if err != nil {
			return err
		}
		if member == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}

		printMember(cmd, member)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, logoutCmd, whoamiCmd} {
		c.Flags().StringVar(&sessionFile, "session-file", "", "where the session is stored (default in the user config directory)")
		rootCmd.AddCommand(c)
	}

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "member email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "member password")
}

func newSessionManager() (*session.Manager, error) {
	commonSetUp()

	path := sessionFile
	if path == "" {
		var err error
		if path, err = session.DefaultFilePath(); err != nil {
			return nil, err
		}
	}

	return session.NewManager(apiclient.NewClient(appCfg.Site.APIURL), session.NewFileStorage(path)), nil
}

func printMember(cmd *cobra.Command, member *models.Member) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logged in as %s <%s>\n", member.Name, member.Email)
	if !member.Verified {
		fmt.Fprintln(out, "The API could not confirm this login, the session is local only.")
	}
}
