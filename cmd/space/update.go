package space

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/events"
	"contentful-cli/internal/utils"
)

var updateName string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rename the active space",
	Long: `Change the name of the active space, or the one given with --space-id.

Examples:
  contentful space update --name "Marketing site (legacy)"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd.Context(), updateName)
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateName, "name", "n", "", "New space name (required)")
	updateCmd.MarkFlagRequired("name")
}

func runUpdate(ctx context.Context, name string) error {
	if err := validateSession(); err != nil {
		return err
	}
	if err := utils.ValidateRequiredString(name, "space name"); err != nil {
		return err
	}

	spaceID := sess.Context.ActiveSpaceID
	client := sess.Client("space-update")

	space, err := client.GetSpace(ctx, spaceID)
	if err != nil {
		return err
	}
	if space.Name == name {
		utils.PrintInfo(fmt.Sprintf("Space %s is already named %s", spaceID, name))
		return nil
	}

	updated, err := client.RenameSpace(ctx, spaceID, space.Sys.Version, name)
	if err != nil {
		return err
	}

	sess.Emit(ctx, events.Event{
		Type:       events.SpaceUpdated,
		ResourceID: spaceID,
		SpaceID:    spaceID,
		Attributes: map[string]string{"name": updated.Name, "previous_name": space.Name},
	})

	utils.DisplaySuccessWithDetails("updated", "space", spaceID, updated.Name)
	return nil
}
