package auth

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/config"
	"contentful-cli/internal/management"
	"contentful-cli/internal/utils"
)

const tokenURL = "https://app.contentful.com/account/profile/cma_tokens"

// LoginCmd stores a management token after verifying it
var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with a Content Management API token",
	Long: `Store a Content Management API token for later commands.

The token is verified against the Management API before it is saved. A
token passed with --management-token or CONTENTFUL_MANAGEMENT_TOKEN is used
directly; otherwise it is read from the terminal without echo.

Create a personal access token at:
  ` + tokenURL + `

Examples:
  contentful login
  contentful login --management-token CFPAT-xxxx`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := ""
		if cmd.Flags().Changed("management-token") {
			token, _ = cmd.Flags().GetString("management-token")
		}
		return runLogin(cmd.Context(), token)
	},
}

func runLogin(ctx context.Context, token string) error {
	if err := validateSession(); err != nil {
		return err
	}

	if token == "" {
		supplied, err := invocationToken(ctx)
		if err != nil {
			return err
		}
		token = supplied
	}

	if token == "" {
		if sess.Context.ManagementToken != "" {
			utils.PrintInfo("You are already logged in.")
			ok, err := sess.Prompter.Confirm("Do you want to log in with a different token?")
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !ok {
				return nil
			}
		}

		fmt.Fprintf(utils.Stdout, "Create a personal access token at %s\n", tokenURL)
		var err error
		token, err = sess.Prompter.Secret("Management token")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		if err := utils.ValidateRequiredString(token, "management token"); err != nil {
			return err
		}
	}

	candidate := sess.Context.Clone()
	candidate.ManagementToken = token
	client := management.NewClientFromContext(candidate, "login")

	user, err := client.GetCurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}

	if err := sess.Update(ctx, &config.ExecutionContext{ManagementToken: token}); err != nil {
		return err
	}

	utils.PrintSuccess(fmt.Sprintf("Logged in as %s", user.FullName()))
	utils.DisplayNextSteps("contentful space list", "contentful space use <space>")
	return nil
}

// invocationToken returns the context token when it differs from the stored
// one, i.e. when a flag or CONTENTFUL_MANAGEMENT_TOKEN supplied it
func invocationToken(ctx context.Context) (string, error) {
	stored, err := sess.Store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load context: %w", err)
	}
	if sess.Context.ManagementToken != stored.ManagementToken {
		return sess.Context.ManagementToken, nil
	}
	return "", nil
}
