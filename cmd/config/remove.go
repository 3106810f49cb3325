package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	appconfig "contentful-cli/internal/config"
	"contentful-cli/internal/utils"
)

var removeAll bool

// fieldNames maps accepted spellings to stored field names
var fieldNames = map[string]string{
	"management-token":      appconfig.FieldManagementToken,
	"active-space-id":       appconfig.FieldActiveSpaceID,
	"active-environment-id": appconfig.FieldActiveEnvironmentID,
	"host":                  appconfig.FieldHost,
	"insecure":              appconfig.FieldInsecure,
	"raw-proxy":             appconfig.FieldRawProxy,
	"proxy":                 appconfig.FieldProxy,
}

var keyNames = []string{"management-token", "active-space-id", "active-environment-id", "host", "insecure", "raw-proxy", "proxy"}

var allFields = []string{
	appconfig.FieldManagementToken,
	appconfig.FieldActiveSpaceID,
	appconfig.FieldActiveEnvironmentID,
	appconfig.FieldHost,
	appconfig.FieldInsecure,
	appconfig.FieldRawProxy,
	appconfig.FieldProxy,
}

var removeCmd = &cobra.Command{
	Use:   "remove <key>...",
	Short: "Remove values from the stored context",
	Long: `Remove one or more values from the stored context.

Keys: management-token, active-space-id, active-environment-id, host,
insecure, raw-proxy, proxy. The stored names (e.g. activeSpaceId) are
accepted as well.

Examples:
  contentful config remove proxy raw-proxy
  contentful config remove --all`,
	Aliases: []string{"rm"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemove(cmd.Context(), args, removeAll)
	},
}

func init() {
	removeCmd.Flags().BoolVar(&removeAll, "all", false, "Remove every stored value")
}

// resolveField accepts both flag-style and stored field names
func resolveField(name string) (string, error) {
	if field, ok := fieldNames[strings.ToLower(name)]; ok {
		return field, nil
	}
	for _, field := range allFields {
		if field == name {
			return field, nil
		}
	}
	return "", fmt.Errorf("unknown key '%s'. Valid keys: %s", name, strings.Join(keyNames, ", "))
}

func runRemove(ctx context.Context, keys []string, all bool) error {
	if err := validateSession(); err != nil {
		return err
	}

	var fields []string
	switch {
	case all:
		fields = allFields
	case len(keys) == 0:
		return fmt.Errorf("no keys given. Pass one or more keys or --all")
	default:
		for _, key := range keys {
			field, err := resolveField(key)
			if err != nil {
				return err
			}
			fields = append(fields, field)
		}
	}

	if err := appconfig.Remove(ctx, sess.Store, fields...); err != nil {
		return err
	}

	utils.PrintSuccess(fmt.Sprintf("Removed %s from the context", strings.Join(fields, ", ")))
	return nil
}
