package accesstoken

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contentful-cli/internal/management"
	"contentful-cli/internal/utils"
)

// tokenList renders access tokens as a table
type tokenList []management.APIKey

// Table implements utils.Tabular
func (l tokenList) Table() utils.Table {
	t := utils.Table{Header: []string{"Name", "Description", "Token", "Environments"}}
	for _, key := range l {
		envs := make([]string, len(key.Environments))
		for i, link := range key.Environments {
			envs[i] = link.Sys.ID
		}
		t.Rows = append(t.Rows, []string{
			key.Name,
			utils.TruncateString(key.Description, 40),
			key.AccessToken,
			strings.Join(envs, ", "),
		})
	}
	return t
}

var listSilent bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the access tokens of the active space",
	Long: `List the Content Delivery API access tokens of the active space.

With --silent the raw API response is printed as JSON, for scripts.

Examples:
  contentful space accesstoken list
  contentful space accesstoken list --silent | jq -r '.items[0].accessToken'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context(), listSilent)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listSilent, "silent", false, "Print the tokens as raw JSON")
}

func runList(ctx context.Context, silent bool) error {
	if err := validateSession(); err != nil {
		return err
	}

	keys, err := sess.Client("accesstoken-list").ListAPIKeys(ctx, sess.Context.ActiveSpaceID)
	if err != nil {
		return err
	}

	if silent {
		data, err := json.MarshalIndent(struct {
			Items []management.APIKey `json:"items"`
		}{Items: keys}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(utils.Stdout, string(data))
		return nil
	}

	if len(keys) == 0 {
		utils.DisplayEmptyState("access tokens", "contentful space accesstoken create --name <name>")
		return nil
	}

	return sess.Output(tokenList(keys))
}
