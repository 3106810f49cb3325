package space

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/config"
	"contentful-cli/internal/prompt"
	"contentful-cli/internal/resolver"
	"contentful-cli/internal/utils"
)

var useCmd = &cobra.Command{
	Use:   "use [space]",
	Short: "Set the active space",
	Long: `Set the space later commands work on. The space can be given as an ID,
a name, or an unambiguous prefix of either. Without an argument you are
asked to select one. The active environment is reset to master.

Examples:
  contentful space use abc123
  contentful space use "Marketing site"
  contentful space use mark`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := ""
		if len(args) == 1 {
			input = args[0]
		} else if cmd.Flags().Changed("space-id") {
			input, _ = cmd.Flags().GetString("space-id")
		}
		return runUse(cmd.Context(), input)
	},
}

func runUse(ctx context.Context, input string) error {
	if err := validateSession(); err != nil {
		return err
	}

	spaces, err := sess.Client("space-use").ListSpaces(ctx)
	if err != nil {
		return err
	}
	if len(spaces) == 0 {
		utils.DisplayEmptyState("spaces", "contentful space create --name <name>")
		return nil
	}

	candidates := spaceCandidates(spaces)

	var selected resolver.Candidate
	if input != "" {
		selected, err = resolver.New("space", candidates).Resolve(input)
		if err != nil {
			return err
		}
	} else {
		options := make([]prompt.Option, len(candidates))
		for i, c := range candidates {
			options[i] = prompt.Option{ID: c.ID, Label: c.Name}
		}
		opt, err := sess.Prompter.Select("Please select a space:", options)
		if errors.Is(err, prompt.ErrNoSelection) {
			fmt.Fprintln(utils.Stdout, "No space selected.")
			return nil
		}
		if err != nil {
			return err
		}
		selected = resolver.Candidate{ID: opt.ID, Name: opt.Label}
	}

	partial := &config.ExecutionContext{
		ActiveSpaceID:       selected.ID,
		ActiveEnvironmentID: config.DefaultEnvironmentID,
	}
	if err := sess.Update(ctx, partial); err != nil {
		return err
	}

	utils.PrintSuccess(fmt.Sprintf("Now using space %s", selected.Label()))
	return nil
}
