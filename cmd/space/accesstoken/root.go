package accesstoken

import (
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/session"
)

// AccessTokenCmd represents the space accesstoken command
var AccessTokenCmd = &cobra.Command{
	Use:     "accesstoken",
	Aliases: []string{"at"},
	Short:   "Manage Content Delivery API access tokens",
	Long: `Access token commands list and create the delivery tokens of the active space.

Examples:
  contentful space accesstoken list
  contentful space accesstoken list --silent
  contentful space accesstoken create --name website --description "Public website"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("missing subcommand. See 'contentful space accesstoken --help' for available commands")
	},
}

var sess *session.Session

func init() {
	AccessTokenCmd.AddCommand(listCmd)
	AccessTokenCmd.AddCommand(createCmd)
}

// SetSession sets the invocation session for the access token commands
func SetSession(s *session.Session) {
	sess = s
}

// validateSession ensures the session is available
func validateSession() error {
	if sess == nil {
		return fmt.Errorf("session not initialized")
	}
	return nil
}
