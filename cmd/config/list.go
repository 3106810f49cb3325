package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	appconfig "contentful-cli/internal/config"
	"contentful-cli/internal/utils"
)

// contextView renders the stored context with the token masked
type contextView appconfig.ExecutionContext

// Table implements utils.Tabular
func (v contextView) Table() utils.Table {
	t := utils.Table{Header: []string{"Key", "Value"}}
	add := func(key, value string) {
		if value != "" {
			t.Rows = append(t.Rows, []string{key, value})
		}
	}
	boolValue := func(b *bool) string {
		if b == nil {
			return ""
		}
		return strconv.FormatBool(*b)
	}

	add(appconfig.FieldManagementToken, v.ManagementToken)
	add(appconfig.FieldActiveSpaceID, v.ActiveSpaceID)
	add(appconfig.FieldActiveEnvironmentID, v.ActiveEnvironmentID)
	add(appconfig.FieldHost, v.Host)
	add(appconfig.FieldInsecure, boolValue(v.Insecure))
	add(appconfig.FieldProxy, v.Proxy)
	add(appconfig.FieldRawProxy, boolValue(v.RawProxy))
	return t
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the stored context",
	Long: `Show the values stored in the context. The management token is masked.

Examples:
  contentful config list
  contentful config list --output yaml`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.Context())
	},
}

func runList(ctx context.Context) error {
	if err := validateSession(); err != nil {
		return err
	}

	stored, err := sess.Store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load context: %w", err)
	}

	view := contextView(*stored.Redacted())
	if len(view.Table().Rows) == 0 && appconfig.Global.OutputFormat == appconfig.OutputFormatTable {
		utils.DisplayEmptyState("stored values", "contentful login")
		return nil
	}

	return sess.Output(view)
}
