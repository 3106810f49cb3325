package events

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"contentful-cli/internal/config"
	"contentful-cli/internal/events"
	"contentful-cli/internal/utils"
)

type tailOptions struct {
	Type    string
	Count   int
	Timeout time.Duration
}

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print audit events as they are published",
	Long: `Print audit events as they are published until interrupted with Ctrl+C,
the --count limit is reached or the --timeout expires.

--type takes a resource ("space") or a full event type ("space.created").`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := tailOptions{}
		opts.Type, _ = cmd.Flags().GetString("type")
		opts.Count, _ = cmd.Flags().GetInt("count")
		opts.Timeout, _ = cmd.Flags().GetDuration("timeout")
		return runTail(cmd.Context(), opts)
	},
}

func init() {
	tailCmd.Flags().StringP("type", "t", "", "Only show events of this resource or type")
	tailCmd.Flags().Int("count", 0, "Stop after this many events (0 = unlimited)")
	tailCmd.Flags().Duration("timeout", 0, "Stop after this long (0 = no timeout)")
}

func runTail(ctx context.Context, opts tailOptions) error {
	cfg := config.Global.Events
	if cfg.NATSURL == "" {
		return fmt.Errorf("audit events are not configured. Set events.nats_url in %s", config.GetSettingsPath())
	}
	if opts.Count < 0 {
		return fmt.Errorf("count cannot be negative")
	}
	if opts.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	sub := newSubscriber(cfg)
	defer func() {
		if err := sub.Close(); err != nil {
			utils.PrintDebug(fmt.Sprintf("Error closing event subscription: %v", err))
		}
	}()

	subject, err := sub.FilterSubject(opts.Type)
	if err != nil {
		return fmt.Errorf("invalid event type: %w", err)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(utils.Stderr, "Following %s on %s (Press Ctrl+C to stop)\n", cyan(subject), cfg.NATSURL)

	received := 0
	err = sub.Subscribe(ctx, opts.Type, func(event events.Event) error {
		received++
		if err := printEvent(event); err != nil {
			return err
		}
		if opts.Count > 0 && received >= opts.Count {
			return events.ErrStop
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(utils.Stderr, "Events received: %d\n", received)
	return nil
}

// printEvent writes one event as a line in table mode and as a document
// in json and yaml mode
func printEvent(event events.Event) error {
	if config.Global.OutputFormat != config.OutputFormatTable {
		return utils.OutputData(event, config.Global.OutputFormat)
	}
	fmt.Fprintln(utils.Stdout, formatEvent(event))
	return nil
}

// formatEvent renders an event as "15:04:05 type resource [space] key=value..."
func formatEvent(event events.Event) string {
	parts := []string{
		event.Timestamp.Local().Format("15:04:05"),
		color.New(color.FgCyan).Sprint(event.Type),
		event.ResourceID,
	}
	if event.SpaceID != "" && event.SpaceID != event.ResourceID {
		parts = append(parts, "space="+event.SpaceID)
	}
	if event.EnvironmentID != "" {
		parts = append(parts, "environment="+event.EnvironmentID)
	}

	keys := make([]string, 0, len(event.Attributes))
	for k := range event.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, event.Attributes[k]))
	}

	return strings.Join(parts, "  ")
}
