package environment

import (
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/session"
)

// EnvironmentCmd represents the space environment command
var EnvironmentCmd = &cobra.Command{
	Use:     "environment",
	Aliases: []string{"env"},
	Short:   "Manage the environments of a space",
	Long: `Environment commands work on the environments of the active space.

Examples:
  contentful space environment list
  contentful space environment create staging --source master --await-processing
  contentful space environment use staging
  contentful space environment delete staging`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("missing subcommand. See 'contentful space environment --help' for available commands")
	},
}

var sess *session.Session

func init() {
	EnvironmentCmd.AddCommand(listCmd)
	EnvironmentCmd.AddCommand(createCmd)
	EnvironmentCmd.AddCommand(deleteCmd)
	EnvironmentCmd.AddCommand(useCmd)
}

// SetSession sets the invocation session for the environment commands
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

// environmentArg returns the positional environment ID, falling back to an
// explicitly passed --environment-id
func environmentArg(cmd *cobra.Command, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	if cmd.Flags().Changed("environment-id") {
		id, _ := cmd.Flags().GetString("environment-id")
		return id
	}
	return ""
}
