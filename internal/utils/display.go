package utils

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// DisplayEmptyState shows a consistent empty state message with suggestions
func DisplayEmptyState(resource, suggestion string) {
	gray := color.New(color.FgHiBlack).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(Stdout, "%s No %s found.\n", gray("ℹ"), resource)

	if suggestion != "" {
		fmt.Fprintf(Stdout, "\nSuggestion: %s\n", cyan(suggestion))
	}
}

// DisplaySuccessWithDetails shows a consistent success message with details
func DisplaySuccessWithDetails(action, resource, id, name string) {
	green := color.New(color.FgGreen).SprintFunc()

	fmt.Fprintf(Stdout, "%s %s %s successfully!\n", green("✓"),
		TitleCase(resource), strings.ToLower(action))

	if id != "" {
		fmt.Fprintf(Stdout, "  ID: %s\n", id)
	}
	if name != "" {
		fmt.Fprintf(Stdout, "  Name: %s\n", name)
	}
}

// DisplayWarningBanner shows a consistent warning banner
func DisplayWarningBanner(title, message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(Stdout, "%s %s\n", yellow("⚠"), bold(title))
	if message != "" {
		for _, line := range strings.Split(message, "\n") {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(Stdout, "  %s\n", line)
			}
		}
	}
}

// DisplayNextSteps prints a numbered list of follow-up commands
func DisplayNextSteps(steps ...string) {
	if len(steps) == 0 {
		return
	}
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(Stdout, "\nNext steps:\n")
	for i, step := range steps {
		fmt.Fprintf(Stdout, "  %d. %s\n", i+1, cyan(step))
	}
}

// FormatTableTitle formats a title for table displays
func FormatTableTitle(title string, total int) string {
	if total == 0 {
		return fmt.Sprintf("%s (empty)", TitleCase(title))
	}
	return fmt.Sprintf("%s (%d total)", TitleCase(title), total)
}

// TitleCase upper-cases the first letter of every word
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
