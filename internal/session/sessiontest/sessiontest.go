// Package sessiontest builds sessions for command tests.
package sessiontest

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"contentful-cli/internal/config"
	"contentful-cli/internal/events"
	"contentful-cli/internal/migration"
	"contentful-cli/internal/prompt"
	"contentful-cli/internal/session"
	"contentful-cli/internal/utils"
)

// Harness is a session with in-memory collaborators and captured output
type Harness struct {
	Session *session.Session
	Store   *config.MemoryStore
	Events  *events.Recorder
	Out     *bytes.Buffer
	Err     *bytes.Buffer
}

// New creates a harness whose store and live context both start as ec.
// input is what the prompter will read. Global output state is restored
// when the test ends.
func New(t testing.TB, ec *config.ExecutionContext, input string) *Harness {
	t.Helper()

	h := &Harness{
		Store:  config.NewMemoryStore(ec),
		Events: &events.Recorder{},
		Out:    &bytes.Buffer{},
		Err:    &bytes.Buffer{},
	}

	oldOut, oldErr := utils.Stdout, utils.Stderr
	oldGlobal := *config.Global
	oldNoColor := color.NoColor
	utils.Stdout, utils.Stderr = h.Out, h.Err
	color.NoColor = true
	config.Global.ColorsEnabled = false
	config.Global.OutputFormat = config.OutputFormatTable
	t.Cleanup(func() {
		utils.Stdout, utils.Stderr = oldOut, oldErr
		*config.Global = oldGlobal
		color.NoColor = oldNoColor
	})

	p := prompt.New(strings.NewReader(input), h.Err)
	h.Session = &session.Session{
		Store:     h.Store,
		Context:   ec.Clone(),
		Publisher: h.Events,
		Prompter:  p,
		Migrator:  migration.NewPlanRunner(h.Out, p.Confirm),
	}
	return h
}

// Stored returns the persisted document
func (h *Harness) Stored(t testing.TB) *config.ExecutionContext {
	t.Helper()
	ec, err := h.Store.Load(context.Background())
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return ec
}
