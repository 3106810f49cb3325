package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"contentful-cli/internal/config"
)

func TestNewPublisherWithoutServerIsNop(t *testing.T) {
	p := NewPublisher(config.EventsConfig{})
	if _, ok := p.(NopPublisher); !ok {
		t.Fatalf("expected NopPublisher, got %T", p)
	}
	if err := p.Publish(context.Background(), Event{Type: SpaceCreated}); err != nil {
		t.Fatal(err)
	}
}

func TestSubject(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "contentful.cli.space.created"},
		{"audit.", "audit.space.created"},
		{"acme.cms", "acme.cms.space.created"},
	}
	for _, tc := range tests {
		p := NewNATSPublisher(config.EventsConfig{NATSURL: "nats://localhost:4222", SubjectPrefix: tc.prefix})
		if got := p.Subject(SpaceCreated); got != tc.want {
			t.Errorf("prefix %q: got %q, want %q", tc.prefix, got, tc.want)
		}
	}
}

func TestAuthMethod(t *testing.T) {
	tests := []struct {
		cfg  config.EventsConfig
		want string
	}{
		{config.EventsConfig{NATSURL: "nats://x"}, AuthMethodNone},
		{config.EventsConfig{NATSURL: "nats://x", Token: "s3cret"}, AuthMethodToken},
		{config.EventsConfig{NATSURL: "nats://x", Token: "s3cret", CredsFile: "/tmp/a.creds"}, AuthMethodCreds},
	}
	for _, tc := range tests {
		p := NewNATSPublisher(tc.cfg)
		if got := p.authMethod(); got != tc.want {
			t.Errorf("authMethod(%+v) = %q, want %q", tc.cfg, got, tc.want)
		}
		if n := len(p.buildConnectionOptions()); n < 4 {
			t.Errorf("expected base connection options, got %d", n)
		}
	}
}

func TestPublishRejectsInvalidSubject(t *testing.T) {
	p := NewNATSPublisher(config.EventsConfig{NATSURL: "nats://127.0.0.1:1"})

	err := p.Publish(context.Background(), Event{Type: "space..created"})
	var eventErr *EventError
	if !errors.As(err, &eventErr) || eventErr.Operation != "publish" {
		t.Fatalf("expected publish EventError, got %v", err)
	}
}

func TestPublishUnreachableServer(t *testing.T) {
	p := NewNATSPublisher(config.EventsConfig{NATSURL: "nats://127.0.0.1:1"})
	p.now = func() time.Time { return time.Unix(0, 0) }

	err := p.Publish(context.Background(), Event{Type: SpaceDeleted, ResourceID: "s1"})
	var eventErr *EventError
	if !errors.As(err, &eventErr) {
		t.Fatalf("expected EventError, got %v", err)
	}
	if eventErr.Operation != "connect" || !eventErr.IsConnectionError() {
		t.Fatalf("unexpected error %+v", eventErr)
	}
	if eventErr.Suggestion() == "" {
		t.Fatal("expected a suggestion for connection errors")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close without connection: %v", err)
	}
}

func TestWrapEventError(t *testing.T) {
	if WrapEventError("publish", "s", nil) != nil {
		t.Fatal("nil must stay nil")
	}

	first := WrapEventError("publish", "a.b", nats.ErrTimeout)
	if !errors.Is(first, nats.ErrTimeout) {
		t.Fatal("wrapped error must unwrap to the NATS error")
	}
	if again := WrapEventError("flush", "a.b", first); again != first {
		t.Fatal("an EventError must not be wrapped twice")
	}
	if got := first.Error(); got != "event publish failed (subject: a.b): NATS operation timed out" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	_ = r.Publish(context.Background(), Event{Type: EnvironmentCreated, ResourceID: "staging"})
	if len(r.Events) != 1 || r.Events[0].ResourceID != "staging" {
		t.Fatalf("unexpected events %+v", r.Events)
	}
}

func TestFilterSubject(t *testing.T) {
	p := NewNATSPublisher(config.EventsConfig{NATSURL: "nats://localhost:4222"})

	tests := []struct {
		eventType string
		want      string
		wantErr   bool
	}{
		{"", "contentful.cli.>", false},
		{"space", "contentful.cli.space.*", false},
		{"space.created", "contentful.cli.space.created", false},
		{"space.*", "", true},
		{".space", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.eventType, func(t *testing.T) {
			got, err := p.FilterSubject(tc.eventType)
			if (err != nil) != tc.wantErr {
				t.Fatalf("FilterSubject(%q) error = %v, wantErr %v", tc.eventType, err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("FilterSubject(%q) = %q, want %q", tc.eventType, got, tc.want)
			}
		})
	}
}

func TestDecodeEvent(t *testing.T) {
	event, err := DecodeEvent([]byte(`{"type":"space.deleted","resource_id":"s1","host":"api.contentful.com","timestamp":"2024-01-02T03:04:05Z"}`))
	if err != nil {
		t.Fatal(err)
	}
	if event.Type != SpaceDeleted || event.ResourceID != "s1" || event.Timestamp.Year() != 2024 {
		t.Fatalf("unexpected event %+v", event)
	}

	if _, err := DecodeEvent([]byte(`{"hello":"world"}`)); err == nil {
		t.Fatal("expected error for a message without a type")
	}
	if _, err := DecodeEvent([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestSubscribeRequiresHandler(t *testing.T) {
	p := NewNATSPublisher(config.EventsConfig{NATSURL: "nats://127.0.0.1:1"})
	if err := p.Subscribe(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for nil handler")
	}

	err := p.Subscribe(context.Background(), "", func(Event) error { return nil })
	var eventErr *EventError
	if !errors.As(err, &eventErr) || eventErr.Operation != "connect" {
		t.Fatalf("expected connect EventError, got %v", err)
	}
}
