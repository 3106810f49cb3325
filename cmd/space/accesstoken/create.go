package accesstoken

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/events"
	"contentful-cli/internal/management"
	"contentful-cli/internal/utils"
)

type createOptions struct {
	Name         string
	Description  string
	Environments []string
	Silent       bool
}

var createOpts createOptions

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an access token",
	Long: `Create a Content Delivery API access token in the active space.

If a token with the same name already exists it is returned instead. The
token gets access to the active environment unless --environment is given.

Examples:
  contentful space accesstoken create --name website
  contentful space accesstoken create --name preview --environment master --environment staging
  contentful space accesstoken create --name ci --silent`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd.Context(), createOpts)
	},
}

func init() {
	createCmd.Flags().StringVarP(&createOpts.Name, "name", "n", "", "Token name (required)")
	createCmd.Flags().StringVarP(&createOpts.Description, "description", "d", "", "Token description")
	createCmd.Flags().StringSliceVar(&createOpts.Environments, "environment", nil, "Environments the token can read (repeatable)")
	createCmd.Flags().BoolVar(&createOpts.Silent, "silent", false, "Print only the token")
	createCmd.MarkFlagRequired("name")
}

func runCreate(ctx context.Context, opts createOptions) error {
	if err := validateSession(); err != nil {
		return err
	}
	if err := utils.ValidateRequiredString(opts.Name, "token name"); err != nil {
		return err
	}

	spaceID := sess.Context.ActiveSpaceID
	client := sess.Client("accesstoken-create")

	existing, err := client.ListAPIKeys(ctx, spaceID)
	if err != nil {
		return err
	}
	for i := range existing {
		if existing[i].Name == opts.Name {
			if !opts.Silent {
				utils.PrintInfo(fmt.Sprintf("Access token %s already exists", opts.Name))
			}
			return printToken(&existing[i], opts.Silent)
		}
	}

	envIDs := opts.Environments
	if len(envIDs) == 0 {
		envIDs = []string{sess.Context.ActiveEnvironmentID}
	}
	links := make([]management.Link, len(envIDs))
	for i, id := range envIDs {
		links[i] = management.NewLink("Environment", id)
	}

	key, err := client.CreateAPIKey(ctx, spaceID, management.CreateAPIKeyRequest{
		Name:         opts.Name,
		Description:  opts.Description,
		Environments: links,
	})
	if err != nil {
		return err
	}

	sess.Emit(ctx, events.Event{
		Type:       events.AccessTokenCreated,
		ResourceID: key.Sys.ID,
		SpaceID:    spaceID,
		Attributes: map[string]string{"name": key.Name},
	})

	if !opts.Silent {
		utils.DisplaySuccessWithDetails("created", "access token", key.Sys.ID, key.Name)
	}
	return printToken(key, opts.Silent)
}

func printToken(key *management.APIKey, silent bool) error {
	if silent {
		fmt.Fprintln(utils.Stdout, key.AccessToken)
		return nil
	}
	return sess.Output(tokenList{*key})
}
