package space

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
	Use:   "delete",
	Short: "Delete the active space",
	Long: `Permanently delete a space and all of its content.

The space is the active space, or the one given with --space-id.

Examples:
  contentful space delete --space-id abc123
  contentful space delete --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd.Context(), deleteYes)
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runDelete(ctx context.Context, yes bool) error {
	if err := validateSession(); err != nil {
		return err
	}

	spaceID := sess.Context.ActiveSpaceID
	client := sess.Client("space-delete")

	space, err := client.GetSpace(ctx, spaceID)
	if err != nil {
		return err
	}

	if !yes {
		utils.DisplayWarningBanner("This will permanently delete the space and all of its content.",
			fmt.Sprintf("Space: %s (%s)", space.Name, space.Sys.ID))
		ok, err := sess.Prompter.Confirm(fmt.Sprintf("Do you really want to delete space %s?", space.Name))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(utils.Stdout, "Space deletion cancelled.")
			return nil
		}
	}

	if err := client.DeleteSpace(ctx, spaceID); err != nil {
		return err
	}

	sess.Emit(ctx, events.Event{
		Type:       events.SpaceDeleted,
		ResourceID: spaceID,
		SpaceID:    spaceID,
		Attributes: map[string]string{"name": space.Name},
	})

	stored, err := sess.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load context: %w", err)
	}
	if stored.ActiveSpaceID == spaceID {
		if err := config.Remove(ctx, sess.Store, config.FieldActiveSpaceID, config.FieldActiveEnvironmentID); err != nil {
			utils.PrintWarning(fmt.Sprintf("Space deleted but failed to clear the active space: %v", err))
		}
	}

	utils.DisplaySuccessWithDetails("deleted", "space", spaceID, space.Name)
	return nil
}
