// Package events publishes audit events for mutating commands.
package events

import (
	"context"
	"time"
)

// Event describes one change made through the CLI
type Event struct {
	Type          string            `json:"type"` // e.g. space.created
	ResourceID    string            `json:"resource_id"`
	SpaceID       string            `json:"space_id,omitempty"`
	EnvironmentID string            `json:"environment_id,omitempty"`
	Host          string            `json:"host"`
	Attributes    map[string]string `json:"attributes,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// Event types published by commands
const (
	SpaceCreated       = "space.created"
	SpaceUpdated       = "space.updated"
	SpaceDeleted       = "space.deleted"
	EnvironmentCreated = "environment.created"
	EnvironmentDeleted = "environment.deleted"
	AccessTokenCreated = "accesstoken.created"
	MigrationApplied   = "migration.applied"
)

// Publisher delivers events. Publishing is best effort for callers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Auth method constants for the NATS connection
const (
	AuthMethodNone  = ""
	AuthMethodToken = "token"
	AuthMethodCreds = "creds"
)

// Default connection configuration values
const (
	DefaultConnectTimeout = 5 * time.Second
	DefaultFlushTimeout   = 5 * time.Second
	DefaultDrainTimeout   = 5 * time.Second
)

// NopPublisher discards every event
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher
func (NopPublisher) Close() error { return nil }

// Recorder keeps events in memory
type Recorder struct {
	Events []Event
}

// Publish implements Publisher
func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.Events = append(r.Events, event)
	return nil
}

// Close implements Publisher
func (r *Recorder) Close() error { return nil }
