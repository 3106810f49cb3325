package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/session"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the stored context",
	Long: `Read and change the values the CLI stores between invocations.

The stored context lives in $XDG_CONFIG_HOME/contentful/contentfulrc.yaml
unless --config-file points somewhere else. Values passed as flags on a
single command always win over stored values.

Examples:
  contentful config add --active-space-id abc123 --host api.eu.contentful.com
  contentful config list
  contentful config remove proxy raw-proxy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("missing subcommand. See 'contentful config --help' for available commands")
	},
}

var sess *session.Session

func init() {
	ConfigCmd.AddCommand(addCmd)
	ConfigCmd.AddCommand(listCmd)
	ConfigCmd.AddCommand(removeCmd)
}

// SetSession sets the invocation session for the config commands
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
