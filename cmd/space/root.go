package space

import (
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/cmd/space/accesstoken"
	"contentful-cli/cmd/space/environment"
	"contentful-cli/internal/session"
)

// SpaceCmd represents the space command
var SpaceCmd = &cobra.Command{
	Use:   "space",
	Short: "Manage spaces",
	Long: `Space commands create, select and change spaces and the environments,
access tokens and content models inside them.

Most space commands work on the active space. Select it once with
'contentful space use' or pass --space-id on a single command.

Examples:
  contentful space list
  contentful space create --name "Marketing site"
  contentful space use marketing
  contentful space environment use staging
  contentful space migration ./migrations/01-blog.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("missing subcommand. See 'contentful space --help' for available commands")
	},
}

var sess *session.Session

func init() {
	SpaceCmd.AddCommand(listCmd)
	SpaceCmd.AddCommand(createCmd)
	SpaceCmd.AddCommand(deleteCmd)
	SpaceCmd.AddCommand(useCmd)
	SpaceCmd.AddCommand(updateCmd)
	SpaceCmd.AddCommand(migrationCmd)
	SpaceCmd.AddCommand(environment.EnvironmentCmd)
	SpaceCmd.AddCommand(accesstoken.AccessTokenCmd)
}

// SetSession sets the invocation session for the space commands and their
// nested groups
func SetSession(s *session.Session) {
	sess = s
	environment.SetSession(s)
	accesstoken.SetSession(s)
}

// validateSession ensures the session is available
func validateSession() error {
	if sess == nil {
		return fmt.Errorf("session not initialized")
	}
	return nil
}
