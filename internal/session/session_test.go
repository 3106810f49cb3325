package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"contentful-cli/internal/config"
	"contentful-cli/internal/events"
	"contentful-cli/internal/utils"
)

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, events.Event) error { return errors.New("no servers") }
func (failingPublisher) Close() error                                { return nil }

func captureStderr(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := utils.Stderr
	prevColors := config.Global.ColorsEnabled
	utils.Stderr = &buf
	config.Global.ColorsEnabled = false
	t.Cleanup(func() {
		utils.Stderr = prev
		config.Global.ColorsEnabled = prevColors
	})
	return &buf
}

func TestEmitFillsContext(t *testing.T) {
	rec := &events.Recorder{}
	s := &Session{
		Context:   &config.ExecutionContext{ActiveSpaceID: "s1", Host: "api.eu.contentful.com"},
		Publisher: rec,
	}

	s.Emit(context.Background(), events.Event{Type: events.EnvironmentDeleted, ResourceID: "staging"})
	s.Emit(context.Background(), events.Event{Type: events.SpaceCreated, ResourceID: "s9", SpaceID: "s9"})

	if len(rec.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(rec.Events))
	}
	if got := rec.Events[0]; got.SpaceID != "s1" || got.Host != "api.eu.contentful.com" {
		t.Fatalf("context not applied: %+v", got)
	}
	if rec.Events[1].SpaceID != "s9" {
		t.Fatal("an explicit space must be kept")
	}
}

func TestEmitFailureIsAWarning(t *testing.T) {
	stderr := captureStderr(t)
	s := &Session{Context: &config.ExecutionContext{}, Publisher: failingPublisher{}}

	s.Emit(context.Background(), events.Event{Type: events.SpaceDeleted})

	if !strings.Contains(stderr.String(), "Warning: failed to publish space.deleted event: no servers") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestUpdateAppliesToLiveContext(t *testing.T) {
	store := config.NewMemoryStore(&config.ExecutionContext{ManagementToken: "CFPAT-x"})
	s := &Session{
		Store:   store,
		Context: &config.ExecutionContext{ManagementToken: "CFPAT-x", ActiveSpaceID: "flag-space", ActiveEnvironmentID: "master"},
	}

	if err := s.Update(context.Background(), &config.ExecutionContext{ActiveEnvironmentID: "staging"}); err != nil {
		t.Fatal(err)
	}

	stored, _ := store.Load(context.Background())
	if *stored != (config.ExecutionContext{ManagementToken: "CFPAT-x", ActiveEnvironmentID: "staging"}) {
		t.Fatalf("only the partial must be persisted, got %+v", stored)
	}
	if s.Context.ActiveEnvironmentID != "staging" || s.Context.ActiveSpaceID != "flag-space" {
		t.Fatalf("unexpected live context %+v", s.Context)
	}
}

func TestUpdatePropagatesStoreErrors(t *testing.T) {
	store := config.NewMemoryStore(nil)
	boom := errors.New("read-only file system")
	store.SaveErr = boom
	s := &Session{Store: store, Context: &config.ExecutionContext{}}

	err := s.Update(context.Background(), &config.ExecutionContext{ActiveSpaceID: "s1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if s.Context.ActiveSpaceID != "" {
		t.Fatal("live context must not change when saving fails")
	}
}

func TestCloseWithoutPublisher(t *testing.T) {
	if err := (&Session{}).Close(); err != nil {
		t.Fatal(err)
	}
}
