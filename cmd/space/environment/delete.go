package environment

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/config"
	"contentful-cli/internal/events"
	"contentful-cli/internal/utils"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <environment-id>",
	Short: "Delete an environment",
	Long: `Permanently delete an environment of the active space.

Examples:
  contentful space environment delete staging
  contentful space environment delete feature-x --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd.Context(), environmentArg(cmd, args), deleteYes)
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(ctx context.Context, environmentID string, yes bool) error {
	if err := validateSession(); err != nil {
		return err
	}
	if err := utils.ValidateResourceID("environment", environmentID); err != nil {
		return err
	}

	spaceID := sess.Context.ActiveSpaceID
	client := sess.Client("environment-delete")

	env, err := client.GetEnvironment(ctx, spaceID, environmentID)
	if err != nil {
		return err
	}

	if !yes {
		ok, err := sess.Prompter.Confirm(fmt.Sprintf("Do you really want to delete environment %s of space %s?", env.Sys.ID, spaceID))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(utils.Stdout, "Environment deletion cancelled.")
			return nil
		}
	}

	if err := client.DeleteEnvironment(ctx, spaceID, env.Sys.ID); err != nil {
		return err
	}

	sess.Emit(ctx, events.Event{
		Type:          events.EnvironmentDeleted,
		ResourceID:    env.Sys.ID,
		SpaceID:       spaceID,
		EnvironmentID: env.Sys.ID,
	})

	stored, err := sess.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load context: %w", err)
	}
	if stored.ActiveSpaceID == spaceID && stored.ActiveEnvironmentID == env.Sys.ID {
		if err := config.Remove(ctx, sess.Store, config.FieldActiveEnvironmentID); err != nil {
			utils.PrintWarning(fmt.Sprintf("Environment deleted but failed to clear the active environment: %v", err))
		}
	}

	utils.DisplaySuccessWithDetails("deleted", "environment", env.Sys.ID, env.Name)
	return nil
}
