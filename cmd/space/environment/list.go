package environment

import (
	"context"
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"contentful-cli/internal/management"
	"contentful-cli/internal/utils"
)

// environmentList renders environments with the active one marked
type environmentList struct {
	environments []management.Environment
	active       string
}

// Table implements utils.Tabular
func (l environmentList) Table() utils.Table {
	cyan := color.New(color.FgCyan).SprintFunc()
	t := utils.Table{Header: []string{"Environment name", "Environment ID", "Status"}}
	for _, env := range l.environments {
		row := []string{env.Name, env.Sys.ID, env.StatusID()}
		if env.Sys.ID == l.active {
			row[0] = cyan("* " + env.Name)
			row[1] = cyan(env.Sys.ID)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// MarshalJSON implements json.Marshaler with the plain environment list
func (l environmentList) MarshalJSON() ([]byte, error) { return json.Marshal(l.environments) }

// MarshalYAML implements yaml.Marshaler
func (l environmentList) MarshalYAML() (interface{}, error) { return l.environments, nil }

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the environments of the active space",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context())
	},
}

func runList(ctx context.Context) error {
	if err := validateSession(); err != nil {
		return err
	}

	envs, err := sess.Client("environment-list").ListEnvironments(ctx, sess.Context.ActiveSpaceID)
	if err != nil {
		return err
	}

	if len(envs) == 0 {
		utils.DisplayEmptyState("environments", "contentful space environment create <id>")
		return nil
	}

	return sess.Output(environmentList{environments: envs, active: sess.Context.ActiveEnvironmentID})
}
