package config

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	appconfig "contentful-cli/internal/config"
	"contentful-cli/internal/utils"
)

// addOptions holds the values given on the command line. nil means the
// flag was not passed.
type addOptions struct {
	ManagementToken     *string
	ActiveSpaceID       *string
	ActiveEnvironmentID *string
	Host                *string
	Proxy               *string
	RawProxy            *bool
	Insecure            *string
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Store values in the context",
	Long: `Store one or more values in the context. Only the values passed are
changed; everything else in the stored context is kept.

Examples:
  contentful config add --management-token CFPAT-xxxx
  contentful config add --active-space-id abc123 --active-environment-id staging
  contentful config add --proxy user:pass@proxy.internal:8080 --raw-proxy=false
  contentful config add --insecure=true`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		opts := addOptions{}

		stringFlag := func(name string) *string {
			if !flags.Changed(name) {
				return nil
			}
			v, _ := flags.GetString(name)
			return &v
		}

		opts.ManagementToken = stringFlag("management-token")
		opts.ActiveSpaceID = stringFlag("active-space-id")
		opts.ActiveEnvironmentID = stringFlag("active-environment-id")
		opts.Host = stringFlag("host")
		opts.Proxy = stringFlag("proxy")
		opts.Insecure = stringFlag("insecure")
		if flags.Changed("raw-proxy") {
			v, _ := flags.GetBool("raw-proxy")
			opts.RawProxy = &v
		}

		return runAdd(cmd.Context(), opts)
	},
}

func runAdd(ctx context.Context, opts addOptions) error {
	if err := validateSession(); err != nil {
		return err
	}

	partial := &appconfig.ExecutionContext{}
	changed := 0

	if opts.ManagementToken != nil {
		if err := utils.ValidateRequiredString(*opts.ManagementToken, "management token"); err != nil {
			return err
		}
		partial.ManagementToken = *opts.ManagementToken
		changed++
	}
	if opts.ActiveSpaceID != nil {
		if err := utils.ValidateResourceID("space", *opts.ActiveSpaceID); err != nil {
			return err
		}
		partial.ActiveSpaceID = *opts.ActiveSpaceID
		changed++
	}
	if opts.ActiveEnvironmentID != nil {
		if err := utils.ValidateResourceID("environment", *opts.ActiveEnvironmentID); err != nil {
			return err
		}
		partial.ActiveEnvironmentID = *opts.ActiveEnvironmentID
		changed++
	}
	if opts.Host != nil {
		if err := utils.ValidateHost(*opts.Host); err != nil {
			return err
		}
		partial.Host = *opts.Host
		changed++
	}
	if opts.Proxy != nil {
		if err := utils.ValidateRequiredString(*opts.Proxy, "proxy"); err != nil {
			return err
		}
		partial.Proxy = *opts.Proxy
		changed++
	}
	if opts.RawProxy != nil {
		partial.RawProxy = appconfig.Bool(*opts.RawProxy)
		changed++
	}
	if opts.Insecure != nil {
		partial.Insecure = appconfig.Bool(*opts.Insecure == "true")
		changed++
	}

	if changed == 0 {
		return fmt.Errorf("nothing to add. See 'contentful config add --help' for the available values")
	}

	if err := appconfig.Update(ctx, sess.Store, partial); err != nil {
		return err
	}

	utils.PrintSuccess(fmt.Sprintf("Stored %d value(s) in the context", changed))
	return nil
}
