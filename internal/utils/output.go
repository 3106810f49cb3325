package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"contentful-cli/internal/config"
)

// Stdout and Stderr are the writers command output goes to
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Table is a header plus rows for table output
type Table struct {
	Header []string
	Rows   [][]string
}

// Tabular is implemented by values that know how to render as a table
type Tabular interface {
	Table() Table
}

// OutputData formats and prints data according to the specified format
func OutputData(data interface{}, format string) error {
	switch strings.ToLower(format) {
	case config.OutputFormatJSON:
		return outputJSON(data)
	case config.OutputFormatYAML:
		return outputYAML(data)
	case config.OutputFormatTable, "":
		return outputTable(data)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// outputJSON prints data in JSON format
func outputJSON(data interface{}) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(Stdout, string(output))
	return nil
}

// outputYAML prints data in YAML format
func outputYAML(data interface{}) error {
	output, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	fmt.Fprint(Stdout, string(output))
	return nil
}

// outputTable prints data in table format
func outputTable(data interface{}) error {
	switch v := data.(type) {
	case Tabular:
		RenderTable(v.Table())
		return nil
	case map[string]string:
		return outputMapTable(v)
	default:
		// Fallback to JSON for complex types
		return outputJSON(data)
	}
}

// RenderTable writes a borderless table in the style of the list commands
func RenderTable(t Table) {
	if len(t.Rows) == 0 {
		fmt.Fprintln(Stdout, "No data found.")
		return
	}

	table := tablewriter.NewWriter(Stdout)
	table.SetHeader(t.Header)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetRowSeparator("")
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(t.Rows)
	table.Render()
}

// outputMapTable outputs a single map as a vertical table
func outputMapTable(data map[string]string) error {
	table := tablewriter.NewWriter(Stdout)
	table.SetHeader([]string{"Field", "Value"})

	for key, value := range data {
		table.Append([]string{key, value})
	}

	table.Render()
	return nil
}

// suggester is implemented by errors that carry a remediation hint
type suggester interface {
	Suggestion() string
}

// PrintError prints an error message with consistent formatting. Joined
// errors are printed one per line, each followed by its suggestion.
func PrintError(err error) {
	if err == nil {
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			PrintError(e)
		}
		return
	}

	if !config.Global.ColorsEnabled {
		fmt.Fprintf(Stderr, "Error: %v\n", err)
	} else {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(Stderr, "%s %v\n", red("Error:"), err)
	}

	var s suggester
	if errors.As(err, &s) && s.Suggestion() != "" {
		if !config.Global.ColorsEnabled {
			fmt.Fprintf(Stderr, "  Suggestion: %s\n", s.Suggestion())
			return
		}
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(Stderr, "  Suggestion: %s\n", cyan(s.Suggestion()))
	}
}

// PrintWarning prints a warning message with consistent formatting
func PrintWarning(message string) {
	if !config.Global.ColorsEnabled {
		fmt.Fprintf(Stderr, "Warning: %s\n", message)
		return
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(Stderr, "%s %s\n", yellow("Warning:"), message)
}

// PrintSuccess prints a success message with consistent formatting
func PrintSuccess(message string) {
	if !config.Global.ColorsEnabled {
		fmt.Fprintf(Stdout, "Success: %s\n", message)
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(Stdout, "%s %s\n", green("✓"), message)
}

// PrintInfo prints an info message with consistent formatting
func PrintInfo(message string) {
	if !config.Global.ColorsEnabled {
		fmt.Fprintf(Stdout, "Info: %s\n", message)
		return
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(Stdout, "%s %s\n", cyan("ℹ"), message)
}

// PrintDebug logs a debug message if debug mode is enabled
func PrintDebug(message string) {
	logger.Debug().Msg(message)
}

// TruncateString truncates a string to the specified length with ellipsis
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
