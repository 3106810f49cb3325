package events

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"contentful-cli/internal/config"
	"contentful-cli/internal/events"
)

// EventsCmd represents the events command
var EventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow audit events",
	Long: `Audit events are published to NATS by commands that change spaces,
environments, access tokens and content types. They are only published when
events.nats_url is set in settings.yaml (or CONTENTFUL_EVENTS_NATS_URL).

Event types:
  space.created, space.updated, space.deleted
  environment.created, environment.deleted
  accesstoken.created
  migration.applied

Examples:
  contentful events tail
  contentful events tail --type space
  contentful events tail --type migration.applied --count 1 --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("missing subcommand. See 'contentful events --help' for available commands")
	},
}

// subscriber is the part of the event bus the tail command uses
type subscriber interface {
	FilterSubject(eventType string) (string, error)
	Subscribe(ctx context.Context, eventType string, handler events.Handler) error
	Close() error
}

// newSubscriber opens the configured event bus
var newSubscriber = func(cfg config.EventsConfig) subscriber {
	return events.NewNATSPublisher(cfg)
}

func init() {
	EventsCmd.AddCommand(tailCmd)
}
