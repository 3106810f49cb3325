package environment

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/config"
	"contentful-cli/internal/management"
	"contentful-cli/internal/prompt"
	"contentful-cli/internal/resolver"
	"contentful-cli/internal/utils"
)

var useCmd = &cobra.Command{
	Use:   "use [environment]",
	Short: "Set the active environment",
	Long: `Set the environment of the active space that later commands work on.
The environment can be given as an ID, a name, or an unambiguous prefix.
Without an argument you are asked to select one.

Examples:
  contentful space environment use staging
  contentful space environment use --environment-id staging`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUse(cmd.Context(), environmentArg(cmd, args))
	},
}

func runUse(ctx context.Context, input string) error {
	if err := validateSession(); err != nil {
		return err
	}

	spaceID := sess.Context.ActiveSpaceID
	client := sess.Client("environment-use")

	if input == "" {
		selected, err := selectEnvironment(ctx, client, spaceID)
		if err != nil || selected == "" {
			return err
		}
		input = selected
	}

	env, err := client.GetEnvironment(ctx, spaceID, input)
	var apiErr *management.APIError
	if errors.As(err, &apiErr) && apiErr.IsNotFoundError() {
		// Not an ID; try names and prefixes
		envs, listErr := client.ListEnvironments(ctx, spaceID)
		if listErr != nil {
			return listErr
		}
		selected, resolveErr := resolver.New("environment", environmentCandidates(envs)).Resolve(input)
		if resolveErr != nil {
			return resolveErr
		}
		env, err = client.GetEnvironment(ctx, spaceID, selected.ID)
	}
	if err != nil {
		return err
	}

	if err := sess.Update(ctx, &config.ExecutionContext{ActiveEnvironmentID: env.Sys.ID}); err != nil {
		return err
	}

	utils.PrintSuccess(fmt.Sprintf("Now using environment %s in space %s", env.Sys.ID, spaceID))
	return nil
}

// selectEnvironment asks the user to pick an environment. An empty ID means
// nothing was selected.
func selectEnvironment(ctx context.Context, client *management.Client, spaceID string) (string, error) {
	envs, err := client.ListEnvironments(ctx, spaceID)
	if err != nil {
		return "", err
	}

	options := make([]prompt.Option, len(envs))
	for i, env := range envs {
		options[i] = prompt.Option{ID: env.Sys.ID, Label: env.Name}
	}

	opt, err := sess.Prompter.Select("Please select an environment:", options)
	if errors.Is(err, prompt.ErrNoSelection) {
		fmt.Fprintln(utils.Stdout, "No environment selected.")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return opt.ID, nil
}

func environmentCandidates(envs []management.Environment) []resolver.Candidate {
	candidates := make([]resolver.Candidate, len(envs))
	for i, env := range envs {
		candidates[i] = resolver.Candidate{ID: env.Sys.ID, Name: env.Name}
	}
	return candidates
}
