package space

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"contentful-cli/internal/config"
	"contentful-cli/internal/management"
	"contentful-cli/internal/utils"
)

// spaceList renders spaces with the active one marked
type spaceList struct {
	spaces []management.Space
	active string
}

// Table implements utils.Tabular
func (l spaceList) Table() utils.Table {
	cyan := color.New(color.FgCyan).SprintFunc()
	t := utils.Table{Header: []string{"Space name", "Space ID"}}
	for _, s := range l.spaces {
		if s.Sys.ID == l.active {
			t.Rows = append(t.Rows, []string{cyan("* " + s.Name), cyan(s.Sys.ID)})
			continue
		}
		t.Rows = append(t.Rows, []string{s.Name, s.Sys.ID})
	}
	return t
}

// MarshalJSON implements json.Marshaler with the plain space list
func (l spaceList) MarshalJSON() ([]byte, error) { return json.Marshal(l.spaces) }

// MarshalYAML implements yaml.Marshaler
func (l spaceList) MarshalYAML() (interface{}, error) { return l.spaces, nil }

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the spaces you have access to",
	Long: `List all spaces the management token can access. The active space is
marked with an asterisk (*).

Examples:
  contentful space list
  contentful space list --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context())
	},
}

func runList(ctx context.Context) error {
	if err := validateSession(); err != nil {
		return err
	}

	spaces, err := sess.Client("space-list").ListSpaces(ctx)
	if err != nil {
		return err
	}

	if len(spaces) == 0 {
		utils.DisplayEmptyState("spaces", "contentful space create --name <name>")
		return nil
	}

	if err := sess.Output(spaceList{spaces: spaces, active: sess.Context.ActiveSpaceID}); err != nil {
		return err
	}

	if sess.Context.ActiveSpaceID == "" && config.Global.OutputFormat == config.OutputFormatTable {
		fmt.Fprintf(utils.Stdout, "\nNo active space. Use %s to select one.\n",
			color.New(color.FgCyan).Sprint("contentful space use <space>"))
	}
	return nil
}
