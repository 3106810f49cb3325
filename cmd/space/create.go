package space

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/config"
	"contentful-cli/internal/events"
	"contentful-cli/internal/management"
	"contentful-cli/internal/prompt"
	"contentful-cli/internal/utils"
)

type createOptions struct {
	Name           string
	OrganizationID string
	DefaultLocale  string
	Use            bool
}

var createOpts createOptions

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a space",
	Long: `Create a new space. When you belong to more than one organization and
--organization-id is not given, you are asked to select one.

Examples:
  contentful space create --name "Marketing site"
  contentful space create --name Docs --organization-id 1abc --default-locale de-DE --use`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd.Context(), createOpts)
	},
}

func init() {
	createCmd.Flags().StringVarP(&createOpts.Name, "name", "n", "", "Space name (required)")
	createCmd.Flags().StringVarP(&createOpts.OrganizationID, "organization-id", "o", "", "Organization to create the space in")
	createCmd.Flags().StringVarP(&createOpts.DefaultLocale, "default-locale", "l", "", "Default locale of the space, e.g. en-US")
	createCmd.Flags().BoolVarP(&createOpts.Use, "use", "u", false, "Make the new space the active space")
	createCmd.MarkFlagRequired("name")
}

func runCreate(ctx context.Context, opts createOptions) error {
	if err := validateSession(); err != nil {
		return err
	}
	if err := utils.ValidateRequiredString(opts.Name, "space name"); err != nil {
		return err
	}

	client := sess.Client("space-create")

	orgID := opts.OrganizationID
	if orgID == "" {
		var err error
		orgID, err = selectOrganization(ctx, client)
		if err != nil {
			return err
		}
	}

	space, err := client.CreateSpace(ctx, orgID, management.CreateSpaceRequest{
		Name:          opts.Name,
		DefaultLocale: opts.DefaultLocale,
	})
	if err != nil {
		return err
	}

	sess.Emit(ctx, events.Event{
		Type:       events.SpaceCreated,
		ResourceID: space.Sys.ID,
		SpaceID:    space.Sys.ID,
		Attributes: map[string]string{"name": space.Name, "organization": orgID},
	})

	utils.DisplaySuccessWithDetails("created", "space", space.Sys.ID, space.Name)

	if opts.Use {
		partial := &config.ExecutionContext{ActiveSpaceID: space.Sys.ID, ActiveEnvironmentID: config.DefaultEnvironmentID}
		if err := sess.Update(ctx, partial); err != nil {
			return err
		}
		utils.PrintInfo(fmt.Sprintf("Now using space %s (%s)", space.Name, space.Sys.ID))
		return nil
	}

	utils.DisplayNextSteps("contentful space use " + space.Sys.ID)
	return nil
}

// selectOrganization picks the organization for a new space. A single
// organization is used directly; several are offered as a selection.
func selectOrganization(ctx context.Context, client *management.Client) (string, error) {
	orgs, err := client.ListOrganizations(ctx)
	if err != nil {
		return "", err
	}
	if len(orgs) == 0 {
		return "", fmt.Errorf("you are not a member of any organization")
	}

	options := make([]prompt.Option, len(orgs))
	for i, org := range orgs {
		options[i] = prompt.Option{ID: org.Sys.ID, Label: org.Name}
	}

	selected, err := sess.Prompter.Select("Please select an organization:", options)
	if errors.Is(err, prompt.ErrNoSelection) {
		return "", fmt.Errorf("an organization is required to create a space. Pass --organization-id")
	}
	if err != nil {
		return "", err
	}
	return selected.ID, nil
}
