package organization

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/management"
	"contentful-cli/internal/session"
	"contentful-cli/internal/utils"
)

// OrganizationCmd represents the organization command
var OrganizationCmd = &cobra.Command{
	Use:     "organization",
	Aliases: []string{"org"},
	Short:   "Manage organizations",
	Long: `Organization commands show the organizations your token can access.

Examples:
  contentful organization list
  contentful org list --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("missing subcommand. See 'contentful organization --help' for available commands")
	},
}

var sess *session.Session

// organizationList renders organizations as a table
type organizationList []management.Organization

// Table implements utils.Tabular
func (l organizationList) Table() utils.Table {
	t := utils.Table{Header: []string{"Organization name", "Organization ID"}}
	for _, org := range l {
		t.Rows = append(t.Rows, []string{org.Name, org.Sys.ID})
	}
	return t
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your organizations",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context())
	},
}

func init() {
	OrganizationCmd.AddCommand(listCmd)
}

// SetSession sets the invocation session for the organization commands
func SetSession(s *session.Session) {
	sess = s
}

func runList(ctx context.Context) error {
	if sess == nil {
		return fmt.Errorf("session not initialized")
	}

	orgs, err := sess.Client("organization-list").ListOrganizations(ctx)
	if err != nil {
		return err
	}

	if len(orgs) == 0 {
		utils.DisplayEmptyState("organizations", "")
		return nil
	}

	return sess.Output(organizationList(orgs))
}
