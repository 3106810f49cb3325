package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"contentful-cli/cmd/auth"
	configcmd "contentful-cli/cmd/config"
	eventscmd "contentful-cli/cmd/events"
	"contentful-cli/cmd/organization"
	"contentful-cli/cmd/space"
	"contentful-cli/internal/config"
	"contentful-cli/internal/middleware"
	"contentful-cli/internal/session"
	"contentful-cli/internal/utils"
)

var (
	// settings holds settings.yaml, the output flags and their CONTENTFUL_*
	// variables. It never feeds the execution context.
	settings = viper.New()
	// invocation holds the context flags and their CONTENTFUL_* variables
	invocation = viper.New()
	sess       *session.Session
)

// settingsFlags are the persistent flags that belong to settings.yaml
var settingsFlags = []string{"output", "colors", "debug"}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contentful",
	Short: "Manage Contentful spaces from the command line",
	Long: `contentful is a command-line interface for the Contentful Management API.

Every command runs against an execution context: the values stored with
'contentful config add' and 'contentful login', overridden by the flags and
CONTENTFUL_* environment variables of the current invocation. Commands check
that the context holds what they need (a management token, an active space)
before doing anything.

Examples:
  contentful login
  contentful space use "Marketing site"
  contentful space environment list
  contentful space migration ./migrations/01-blog.yaml --environment-id staging`,
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("missing subcommand. See 'contentful --help' for available commands")
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applySettings(); err != nil {
			return err
		}

		store := config.NewFileStore(invocation.GetString("config-file"))
		ec, err := middleware.BuildContext(cmd.Context(), store, invocationArgs())
		if err != nil {
			return err
		}
		utils.Logger().Debug().
			Str("store", store.Path()).
			Interface("context", ec.Redacted()).
			Msg("execution context built")

		if err := middleware.AssertContext(middleware.CommandKey(cmd.CommandPath()), ec); err != nil {
			return err
		}

		sess = session.New(store, ec)
		setSession(sess)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if sess != nil {
		if closeErr := sess.Close(); closeErr != nil {
			utils.PrintDebug(fmt.Sprintf("failed to close event publisher: %v", closeErr))
		}
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()

	// Execution context
	flags.String("management-token", "", "Content Management API token")
	flags.String("space-id", "", "Space to work on instead of the active space")
	flags.String("environment-id", "", "Environment to work on instead of the active environment")
	flags.String("active-space-id", "", "Space ID used when --space-id is not given")
	flags.String("active-environment-id", "", "Environment ID used when --environment-id is not given")
	flags.String("host", "", "Management API host (default \"api.contentful.com\")")
	flags.String("insecure", "", "Skip TLS certificate verification (--insecure or --insecure=true)")
	flags.Lookup("insecure").NoOptDefVal = "true"
	flags.String("proxy", "", "Proxy for API requests, e.g. user:pass@host:port")
	flags.Bool("raw-proxy", false, "Pass the proxy through to the HTTP client unmodified")
	flags.String("config-file", "", "Path of the stored context file")

	// Output
	flags.String("output", config.OutputFormatTable, "Output format (json|yaml|table)")
	flags.Bool("colors", true, "Enable colored output")
	flags.Bool("debug", false, "Enable debug output")

	flags.VisitAll(func(f *pflag.Flag) {
		if !isSettingsFlag(f.Name) {
			invocation.BindPFlag(f.Name, f)
		}
	})
	bindEnv(invocation)

	addCommands()
}

// addCommands adds all command groups to the root command
func addCommands() {
	rootCmd.AddCommand(auth.LoginCmd)
	rootCmd.AddCommand(auth.LogoutCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(space.SpaceCmd)
	rootCmd.AddCommand(organization.OrganizationCmd)
	rootCmd.AddCommand(eventscmd.EventsCmd)
}

// setSession passes the session to every command group
func setSession(s *session.Session) {
	auth.SetSession(s)
	configcmd.SetSession(s)
	space.SetSession(s)
	organization.SetSession(s)
}

func isSettingsFlag(name string) bool {
	for _, s := range settingsFlags {
		if s == name {
			return true
		}
	}
	return false
}

func bindEnv(vp *viper.Viper) {
	vp.SetEnvPrefix("CONTENTFUL")
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	vp.AutomaticEnv()
}

// initConfig reads in the settings file and ENV variables if set.
// Each run starts from a fresh instance so values never carry over.
func initConfig() {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("settings")
	v.AddConfigPath(config.GetConfigDir())
	bindEnv(v)

	for _, name := range settingsFlags {
		v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Event settings only come from settings.yaml or the environment
	v.SetDefault("events.nats_url", "")
	v.SetDefault("events.subject_prefix", config.DefaultEventSubjectPrefix)
	v.SetDefault("events.token", "")
	v.SetDefault("events.creds_file", "")

	settings = v
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: failed to read %s: %v\n", config.GetSettingsPath(), err)
		}
	}
}

// applySettings loads output and event settings into config.Global
func applySettings() error {
	if err := settings.Unmarshal(config.Global); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	config.Global.OutputFormat = strings.ToLower(config.Global.OutputFormat)
	if err := config.ValidateOutputFormat(config.Global.OutputFormat); err != nil {
		return err
	}

	if !config.Global.ColorsEnabled {
		color.NoColor = true
	}
	utils.InitLogger(config.Global.Debug, config.Global.ColorsEnabled)

	if used := settings.ConfigFileUsed(); used != "" {
		utils.PrintDebug(fmt.Sprintf("Using settings file: %s", used))
	}
	return nil
}

// invocationArgs collects the execution context inputs of this invocation:
// changed flags and CONTENTFUL_* variables. settings.yaml is not consulted.
// Insecure and RawProxy stay nil unless passed or set in the environment.
func invocationArgs() middleware.InvocationArgs {
	v := invocation
	args := middleware.InvocationArgs{
		ManagementToken:     v.GetString("management-token"),
		SpaceID:             v.GetString("space-id"),
		ActiveSpaceID:       v.GetString("active-space-id"),
		EnvironmentID:       v.GetString("environment-id"),
		ActiveEnvironmentID: v.GetString("active-environment-id"),
		Host:                v.GetString("host"),
		Proxy:               v.GetString("proxy"),
	}

	if v.IsSet("insecure") {
		insecure := v.GetString("insecure")
		args.Insecure = &insecure
	}
	if v.IsSet("raw-proxy") {
		raw := v.GetBool("raw-proxy")
		args.RawProxy = &raw
	}

	return args
}
