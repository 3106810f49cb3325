// Package session carries the resolved state of one CLI invocation into the
// command handlers.
package session

import (
	"context"
	"fmt"

	"contentful-cli/internal/config"
	"contentful-cli/internal/events"
	"contentful-cli/internal/management"
	"contentful-cli/internal/migration"
	"contentful-cli/internal/prompt"
	"contentful-cli/internal/utils"
)

// Session is everything a command needs after the context has been built
// and the access guard has passed
type Session struct {
	Store     config.Store
	Context   *config.ExecutionContext
	Publisher events.Publisher
	Prompter  *prompt.Prompter
	Migrator  migration.Runner
}

// New creates a terminal session for ec backed by store
func New(store config.Store, ec *config.ExecutionContext) *Session {
	p := prompt.NewTerminal()
	return &Session{
		Store:     store,
		Context:   ec,
		Publisher: events.NewPublisher(config.Global.Events),
		Prompter:  p,
		Migrator:  migration.NewPlanRunner(utils.Stdout, p.Confirm),
	}
}

// Client returns a Management API client for the session's context.
// feature is reported in the X-Contentful-User-Agent header.
func (s *Session) Client(feature string) *management.Client {
	return management.NewClientFromContext(s.Context, feature)
}

// Output prints data in the configured output format
func (s *Session) Output(data interface{}) error {
	return utils.OutputData(data, config.Global.OutputFormat)
}

// Emit publishes an audit event. Delivery failures are reported as warnings
// and never fail the command.
func (s *Session) Emit(ctx context.Context, event events.Event) {
	if s.Publisher == nil {
		return
	}
	if event.SpaceID == "" {
		event.SpaceID = s.Context.ActiveSpaceID
	}
	if event.Host == "" {
		event.Host = s.Context.Host
	}

	if err := s.Publisher.Publish(ctx, event); err != nil {
		utils.PrintWarning(fmt.Sprintf("failed to publish %s event: %v", event.Type, err))
		return
	}
	utils.Logger().Debug().Str("type", event.Type).Str("resource", event.ResourceID).Msg("event published")
}

// Update persists partial into the store and applies it to the live context
func (s *Session) Update(ctx context.Context, partial *config.ExecutionContext) error {
	if err := config.Update(ctx, s.Store, partial); err != nil {
		return err
	}
	s.Context = config.Merge(s.Context, partial)
	return nil
}

// Close releases the event publisher
func (s *Session) Close() error {
	if s.Publisher == nil {
		return nil
	}
	return s.Publisher.Close()
}
