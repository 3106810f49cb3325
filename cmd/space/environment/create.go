package environment

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"contentful-cli/internal/events"
	"contentful-cli/internal/management"
	"contentful-cli/internal/utils"
)

// Environment provisioning states
const (
	statusReady  = "ready"
	statusFailed = "failed"
)

type createOptions struct {
	ID                string
	Name              string
	Source            string
	AwaitProcessing   bool
	ProcessingTimeout time.Duration
}

var (
	createOpts   createOptions
	pollInterval = 2 * time.Second
)

var createCmd = &cobra.Command{
	Use:   "create <environment-id>",
	Short: "Create an environment",
	Long: `Create an environment in the active space. The new environment is a copy
of --source, or of master when no source is given.

Examples:
  contentful space environment create staging
  contentful space environment create feature-x --name "Feature X" --source staging
  contentful space environment create qa --await-processing --processing-timeout 10m`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := createOpts
		opts.ID = environmentArg(cmd, args)
		return runCreate(cmd.Context(), opts)
	},
}

func init() {
	createCmd.Flags().StringVarP(&createOpts.Name, "name", "n", "", "Environment name (defaults to the ID)")
	createCmd.Flags().StringVarP(&createOpts.Source, "source", "s", "", "Environment to copy from")
	createCmd.Flags().BoolVarP(&createOpts.AwaitProcessing, "await-processing", "w", false, "Wait until the environment is ready")
	createCmd.Flags().DurationVar(&createOpts.ProcessingTimeout, "processing-timeout", 5*time.Minute, "How long to wait with --await-processing")
}

func runCreate(ctx context.Context, opts createOptions) error {
	if err := validateSession(); err != nil {
		return err
	}
	if err := utils.ValidateResourceID("environment", opts.ID); err != nil {
		return err
	}

	spaceID := sess.Context.ActiveSpaceID
	client := sess.Client("environment-create")

	env, err := client.CreateEnvironment(ctx, spaceID, opts.ID, opts.Name, opts.Source)
	if err != nil {
		return err
	}

	attrs := map[string]string{"name": env.Name}
	if opts.Source != "" {
		attrs["source"] = opts.Source
	}
	sess.Emit(ctx, events.Event{
		Type:          events.EnvironmentCreated,
		ResourceID:    env.Sys.ID,
		SpaceID:       spaceID,
		EnvironmentID: env.Sys.ID,
		Attributes:    attrs,
	})

	utils.DisplaySuccessWithDetails("created", "environment", env.Sys.ID, env.Name)

	if !opts.AwaitProcessing {
		return nil
	}

	utils.PrintInfo("Waiting for the environment to be processed...")
	status, err := awaitProcessing(ctx, client, spaceID, env.Sys.ID, opts.ProcessingTimeout)
	if err != nil {
		return err
	}
	if status == statusFailed {
		return fmt.Errorf("environment '%s' failed to process", env.Sys.ID)
	}

	utils.PrintSuccess(fmt.Sprintf("Environment %s is ready", env.Sys.ID))
	return nil
}

// awaitProcessing polls the environment until it is ready, failed or the
// timeout passes
func awaitProcessing(ctx context.Context, client *management.Client, spaceID, environmentID string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		env, err := client.GetEnvironment(ctx, spaceID, environmentID)
		if err != nil {
			if ctx.Err() != nil {
				return "", fmt.Errorf("environment '%s' was not ready after %s", environmentID, timeout)
			}
			return "", err
		}

		status := env.StatusID()
		utils.PrintDebug(fmt.Sprintf("Environment %s status: %s", environmentID, status))
		if status == statusReady || status == statusFailed {
			return status, nil
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("environment '%s' was not ready after %s", environmentID, timeout)
		case <-ticker.C:
		}
	}
}
