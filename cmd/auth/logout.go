package auth

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/config"
	"contentful-cli/internal/utils"
)

var logoutYes bool

// LogoutCmd removes the stored management token
var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove the stored management token",
	Long: `Remove the management token from the stored context.

The token itself stays valid. Revoke it at
  ` + tokenURL + `

Examples:
  contentful logout
  contentful logout --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogout(cmd.Context(), logoutYes)
	},
}

func init() {
	LogoutCmd.Flags().BoolVarP(&logoutYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runLogout(ctx context.Context, yes bool) error {
	if err := validateSession(); err != nil {
		return err
	}

	if !yes {
		utils.DisplayWarningBanner("This will remove your management token from the local context.", "")
		ok, err := sess.Prompter.Confirm("Do you want to log out?")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(utils.Stdout, "Logout cancelled.")
			return nil
		}
	}

	if err := config.Remove(ctx, sess.Store, config.FieldManagementToken); err != nil {
		return err
	}
	sess.Context.ManagementToken = ""

	utils.PrintSuccess("Logged out. The management token was removed from the local context.")
	return nil
}
