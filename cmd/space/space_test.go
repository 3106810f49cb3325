package space

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"contentful-cli/internal/config"
	"contentful-cli/internal/events"
	"contentful-cli/internal/migration"
	"contentful-cli/internal/session/sessiontest"
)

const spacesBody = `{"total":2,"skip":0,"limit":100,"items":[
	{"sys":{"id":"s1","version":1},"name":"Marketing"},
	{"sys":{"id":"s2","version":1},"name":"Docs"}]}`

func setup(t *testing.T, ec *config.ExecutionContext, input string) (*sessiontest.Harness, *sessiontest.API) {
	t.Helper()
	api := sessiontest.NewAPI(t)
	ec.Host = api.URL
	if ec.ManagementToken == "" {
		ec.ManagementToken = "CFPAT-test"
	}
	h := sessiontest.New(t, ec, input)
	SetSession(h.Session)
	return h, api
}

func TestListMarksActiveSpace(t *testing.T) {
	h, api := setup(t, &config.ExecutionContext{ActiveSpaceID: "s2"}, "")
	api.Handle(http.MethodGet, "/spaces", http.StatusOK, spacesBody)

	if err := runList(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := h.Out.String()
	if !strings.Contains(out, "* Docs") || strings.Contains(out, "* Marketing") {
		t.Fatalf("active space not marked: %q", out)
	}
}

func TestListJSON(t *testing.T) {
	h, api := setup(t, &config.ExecutionContext{}, "")
	api.Handle(http.MethodGet, "/spaces", http.StatusOK, spacesBody)
	config.Global.OutputFormat = config.OutputFormatJSON

	if err := runList(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(h.Out.String()), "[") || !strings.Contains(h.Out.String(), `"name": "Docs"`) {
		t.Fatalf("unexpected JSON %q", h.Out.String())
	}
}

func TestCreateWithSingleOrganization(t *testing.T) {
	h, api := setup(t, &config.ExecutionContext{}, "")
	api.Handle(http.MethodGet, "/organizations", http.StatusOK, `{"total":1,"items":[{"sys":{"id":"org1"},"name":"Acme"}]}`)
	api.Handle(http.MethodPost, "/spaces", http.StatusCreated, `{"sys":{"id":"new1","version":1},"name":"Docs"}`)

	if err := runCreate(context.Background(), createOptions{Name: "Docs", Use: true}); err != nil {
		t.Fatal(err)
	}

	req, ok := api.Find(http.MethodPost, "/spaces")
	if !ok {
		t.Fatal("space was not created")
	}
	if req.Header.Get("X-Contentful-Organization") != "org1" || !strings.Contains(req.Body, `"name":"Docs"`) {
		t.Fatalf("unexpected create request %+v", req)
	}

	stored := h.Stored(t)
	if stored.ActiveSpaceID != "new1" || stored.ActiveEnvironmentID != "master" {
		t.Fatalf("--use must store the new space, got %+v", stored)
	}

	if len(h.Events.Events) != 1 || h.Events.Events[0].Type != events.SpaceCreated || h.Events.Events[0].Attributes["organization"] != "org1" {
		t.Fatalf("unexpected events %+v", h.Events.Events)
	}
}

func TestCreatePromptsForOrganization(t *testing.T) {
	h, api := setup(t, &config.ExecutionContext{}, "2\n")
	api.Handle(http.MethodGet, "/organizations", http.StatusOK,
		`{"total":2,"items":[{"sys":{"id":"org1"},"name":"Acme"},{"sys":{"id":"org2"},"name":"Globex"}]}`)
	api.Handle(http.MethodPost, "/spaces", http.StatusCreated, `{"sys":{"id":"new2"},"name":"Blog"}`)

	if err := runCreate(context.Background(), createOptions{Name: "Blog"}); err != nil {
		t.Fatal(err)
	}

	req, _ := api.Find(http.MethodPost, "/spaces")
	if got := req.Header.Get("X-Contentful-Organization"); got != "org2" {
		t.Fatalf("organization header = %q", got)
	}
	if !strings.Contains(h.Err.String(), "Please select an organization:") {
		t.Fatalf("expected organization prompt, got %q", h.Err.String())
	}
	if h.Store.Saves != 0 {
		t.Fatal("space must not become active without --use")
	}
}

func TestCreateWithoutOrganizations(t *testing.T) {
	_, api := setup(t, &config.ExecutionContext{}, "")
	api.Handle(http.MethodGet, "/organizations", http.StatusOK, `{"total":0,"items":[]}`)

	err := runCreate(context.Background(), createOptions{Name: "Blog"})
	if err == nil || !strings.Contains(err.Error(), "not a member of any organization") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestDeleteClearsActiveSpace(t *testing.T) {
	h, api := setup(t, &config.ExecutionContext{ActiveSpaceID: "s1", ActiveEnvironmentID: "staging"}, "y\n")
	api.Handle(http.MethodGet, "/spaces/s1", http.StatusOK, `{"sys":{"id":"s1","version":3},"name":"Marketing"}`)
	api.Handle(http.MethodDelete, "/spaces/s1", http.StatusNoContent, "")

	if err := runDelete(context.Background(), false); err != nil {
		t.Fatal(err)
	}

	stored := h.Stored(t)
	if stored.ActiveSpaceID != "" || stored.ActiveEnvironmentID != "" || stored.ManagementToken == "" {
		t.Fatalf("unexpected stored context %+v", stored)
	}
	if len(h.Events.Events) != 1 || h.Events.Events[0].Type != events.SpaceDeleted {
		t.Fatalf("unexpected events %+v", h.Events.Events)
	}
}

func TestDeleteDeclined(t *testing.T) {
	h, api := setup(t, &config.ExecutionContext{ActiveSpaceID: "s1"}, "n\n")
	api.Handle(http.MethodGet, "/spaces/s1", http.StatusOK, `{"sys":{"id":"s1","version":3},"name":"Marketing"}`)

	if err := runDelete(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	if _, ok := api.Find(http.MethodDelete, "/spaces/s1"); ok {
		t.Fatal("space must not be deleted when declined")
	}
	if len(h.Events.Events) != 0 {
		t.Fatal("no event expected")
	}
}

func TestUseResolvesPartialName(t *testing.T) {
	h, api := setup(t, &config.ExecutionContext{ActiveSpaceID: "s2", ActiveEnvironmentID: "staging"}, "")
	api.Handle(http.MethodGet, "/spaces", http.StatusOK, spacesBody)

	if err := runUse(context.Background(), "mark"); err != nil {
		t.Fatal(err)
	}

	stored := h.Stored(t)
	if stored.ActiveSpaceID != "s1" || stored.ActiveEnvironmentID != "master" {
		t.Fatalf("unexpected stored context %+v", stored)
	}
	if h.Session.Context.ActiveSpaceID != "s1" {
		t.Fatal("live context must follow the stored one")
	}
}

func TestUseUnknownSpace(t *testing.T) {
	h, api := setup(t, &config.ExecutionContext{}, "")
	api.Handle(http.MethodGet, "/spaces", http.StatusOK, spacesBody)

	err := runUse(context.Background(), "zzz")
	if err == nil || !strings.Contains(err.Error(), "unknown space 'zzz'") {
		t.Fatalf("unexpected error %v", err)
	}
	if h.Store.Saves != 0 {
		t.Fatal("nothing must be stored")
	}
}

func TestUsePromptsWithoutArgument(t *testing.T) {
	h, api := setup(t, &config.ExecutionContext{}, "2\n")
	api.Handle(http.MethodGet, "/spaces", http.StatusOK, spacesBody)

	if err := runUse(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if got := h.Stored(t).ActiveSpaceID; got != "s2" {
		t.Fatalf("stored space %q", got)
	}
}

func TestUpdateRenamesAtCurrentVersion(t *testing.T) {
	h, api := setup(t, &config.ExecutionContext{ActiveSpaceID: "s1"}, "")
	api.Handle(http.MethodGet, "/spaces/s1", http.StatusOK, `{"sys":{"id":"s1","version":5},"name":"Marketing"}`)
	api.Handle(http.MethodPut, "/spaces/s1", http.StatusOK, `{"sys":{"id":"s1","version":6},"name":"Marketing (old)"}`)

	if err := runUpdate(context.Background(), "Marketing (old)"); err != nil {
		t.Fatal(err)
	}

	req, ok := api.Find(http.MethodPut, "/spaces/s1")
	if !ok || req.Header.Get("X-Contentful-Version") != "5" {
		t.Fatalf("unexpected update request %+v", req)
	}
	if len(h.Events.Events) != 1 || h.Events.Events[0].Attributes["previous_name"] != "Marketing" {
		t.Fatalf("unexpected events %+v", h.Events.Events)
	}
}

type fakeRunner struct {
	got []migration.Options
	err error
}

func (f *fakeRunner) Run(_ context.Context, opts migration.Options) error {
	f.got = append(f.got, opts)
	return f.err
}

func TestMigrationPassesAllOptions(t *testing.T) {
	h, _ := setup(t, &config.ExecutionContext{
		ManagementToken:     "managementToken",
		ActiveSpaceID:       "spaceId",
		ActiveEnvironmentID: "master",
	}, "")
	runner := &fakeRunner{}
	h.Session.Migrator = runner

	if err := runMigration(context.Background(), "migrations/01.yaml", true); err != nil {
		t.Fatal(err)
	}

	want := migration.Options{
		FilePath:              "migrations/01.yaml",
		SpaceID:               "spaceId",
		EnvironmentID:         "master",
		AccessToken:           "managementToken",
		Host:                  h.Session.Context.Host,
		Headers:               map[string]string{},
		ManagementApplication: "contentful.cli/" + config.Version,
		ManagementFeature:     "space-migration",
		Yes:                   true,
	}
	if len(runner.got) != 1 || !reflect.DeepEqual(runner.got[0], want) {
		t.Fatalf("runner options = %+v, want %+v", runner.got, want)
	}
	if len(h.Events.Events) != 1 || h.Events.Events[0].ResourceID != "01.yaml" {
		t.Fatalf("unexpected events %+v", h.Events.Events)
	}
}

func TestMigrationAbortIsNotAnError(t *testing.T) {
	h, _ := setup(t, &config.ExecutionContext{ActiveSpaceID: "spaceId"}, "")
	h.Session.Migrator = &fakeRunner{err: migration.ErrAborted}

	if err := runMigration(context.Background(), "plan.yaml", false); err != nil {
		t.Fatal(err)
	}
	if len(h.Events.Events) != 0 {
		t.Fatal("aborted migrations must not publish events")
	}

	boom := errors.New("boom")
	h.Session.Migrator = &fakeRunner{err: boom}
	if err := runMigration(context.Background(), "plan.yaml", false); !errors.Is(err, boom) {
		t.Fatalf("expected runner error, got %v", err)
	}
}
