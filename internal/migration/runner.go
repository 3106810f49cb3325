package migration

import (
	"context"
	"errors"
	"fmt"
	"io"

	"contentful-cli/internal/config"
	"contentful-cli/internal/management"
)

// Options are everything a migration run needs
type Options struct {
	FilePath              string
	SpaceID               string
	EnvironmentID         string
	AccessToken           string
	Host                  string
	Insecure              bool
	Proxy                 string
	RawProxy              bool
	Headers               map[string]string
	ManagementApplication string
	ManagementFeature     string
	Yes                   bool
}

// Runner executes a migration
type Runner interface {
	Run(ctx context.Context, opts Options) error
}

// ContentTypeAPI is the part of the management client a migration uses
type ContentTypeAPI interface {
	GetContentType(ctx context.Context, spaceID, environmentID, contentTypeID string) (*management.ContentType, error)
	PutContentType(ctx context.Context, spaceID, environmentID string, ct *management.ContentType) (*management.ContentType, error)
	PublishContentType(ctx context.Context, spaceID, environmentID, contentTypeID string, version int) (*management.ContentType, error)
	DeleteContentType(ctx context.Context, spaceID, environmentID, contentTypeID string) error
}

// ErrAborted is returned when the user declines to apply the plan
var ErrAborted = errors.New("migration aborted")

// PlanRunner applies a YAML plan through the Management API
type PlanRunner struct {
	// NewAPI builds the API client; defaults to the management client
	NewAPI func(opts Options) ContentTypeAPI
	// Confirm is asked before applying unless Options.Yes is set
	Confirm func(summary string) (bool, error)
	Out     io.Writer
}

// NewPlanRunner creates a runner that writes progress to out
func NewPlanRunner(out io.Writer, confirm func(string) (bool, error)) *PlanRunner {
	return &PlanRunner{
		NewAPI:  newManagementAPI,
		Confirm: confirm,
		Out:     out,
	}
}

func newManagementAPI(opts Options) ContentTypeAPI {
	client := management.NewClient(management.Options{
		Host:        opts.Host,
		Token:       opts.AccessToken,
		Insecure:    opts.Insecure,
		Proxy:       opts.Proxy,
		RawProxy:    opts.RawProxy,
		Application: opts.ManagementApplication,
		Feature:     opts.ManagementFeature,
		RetryCount:  management.DefaultRetryCount,
	})
	return client
}

// Run loads the plan, confirms it and applies every step in order
func (r *PlanRunner) Run(ctx context.Context, opts Options) error {
	plan, err := LoadPlan(opts.FilePath)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("The following migration will be applied to environment %s of space %s:\n", opts.EnvironmentID, opts.SpaceID)
	for i, step := range plan.Steps {
		summary += fmt.Sprintf("  %d. %s\n", i+1, step.Describe())
	}
	fmt.Fprint(r.Out, summary)

	if !opts.Yes && r.Confirm != nil {
		ok, err := r.Confirm("Do you want to apply the migration?")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			return ErrAborted
		}
	}

	newAPI := r.NewAPI
	if newAPI == nil {
		newAPI = newManagementAPI
	}
	api := newAPI(opts)

	for i, step := range plan.Steps {
		if err := applyStep(ctx, api, opts, step); err != nil {
			return fmt.Errorf("step %d (%s) failed: %w", i+1, step.Describe(), err)
		}
		fmt.Fprintf(r.Out, "  ✓ %s\n", step.Describe())
	}

	fmt.Fprintf(r.Out, "Migration applied: %d steps\n", len(plan.Steps))
	return nil
}

func applyStep(ctx context.Context, api ContentTypeAPI, opts Options, step Step) error {
	switch step.Action {
	case ActionCreate:
		ct := &management.ContentType{
			Sys:          management.Sys{ID: step.ContentType},
			Name:         step.Name,
			Description:  step.Description,
			DisplayField: step.DisplayField,
			Fields:       step.Fields,
		}
		return saveAndPublish(ctx, api, opts, ct)

	case ActionUpdate:
		ct, err := api.GetContentType(ctx, opts.SpaceID, opts.EnvironmentID, step.ContentType)
		if err != nil {
			return err
		}
		if err := applyUpdate(ct, step); err != nil {
			return err
		}

		// Fields must be omitted and published before they can be removed
		if len(step.DeleteFields) > 0 {
			omitFields(ct, step.DeleteFields)
			if err := saveAndPublish(ctx, api, opts, ct); err != nil {
				return err
			}
			removeFields(ct, step.DeleteFields)
		}
		return saveAndPublish(ctx, api, opts, ct)

	case ActionDelete:
		return api.DeleteContentType(ctx, opts.SpaceID, opts.EnvironmentID, step.ContentType)
	}
	return fmt.Errorf("unknown action '%s'", step.Action)
}

func applyUpdate(ct *management.ContentType, step Step) error {
	if step.Name != "" {
		ct.Name = step.Name
	}
	if step.Description != "" {
		ct.Description = step.Description
	}

	existing := make(map[string]bool, len(ct.Fields))
	for _, f := range ct.Fields {
		existing[f.ID] = true
	}
	for _, f := range step.Fields {
		if existing[f.ID] {
			return fmt.Errorf("field '%s' already exists on %s", f.ID, ct.Sys.ID)
		}
		ct.Fields = append(ct.Fields, f)
		existing[f.ID] = true
	}

	for _, id := range step.DeleteFields {
		if !existing[id] {
			return fmt.Errorf("field '%s' does not exist on %s", id, ct.Sys.ID)
		}
		if id == ct.DisplayField && step.DisplayField == "" {
			return fmt.Errorf("field '%s' is the display field of %s", id, ct.Sys.ID)
		}
	}

	if step.DisplayField != "" {
		if !existing[step.DisplayField] {
			return fmt.Errorf("displayField '%s' is not a field of %s", step.DisplayField, ct.Sys.ID)
		}
		ct.DisplayField = step.DisplayField
	}
	return nil
}

func omitFields(ct *management.ContentType, ids []string) {
	for i := range ct.Fields {
		for _, id := range ids {
			if ct.Fields[i].ID == id {
				ct.Fields[i].Omitted = true
			}
		}
	}
}

func removeFields(ct *management.ContentType, ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := ct.Fields[:0]
	for _, f := range ct.Fields {
		if !drop[f.ID] {
			kept = append(kept, f)
		}
	}
	ct.Fields = kept
}

// saveAndPublish saves ct, publishes it and copies the new version back
func saveAndPublish(ctx context.Context, api ContentTypeAPI, opts Options, ct *management.ContentType) error {
	saved, err := api.PutContentType(ctx, opts.SpaceID, opts.EnvironmentID, ct)
	if err != nil {
		return err
	}
	published, err := api.PublishContentType(ctx, opts.SpaceID, opts.EnvironmentID, saved.Sys.ID, saved.Sys.Version)
	if err != nil {
		return err
	}
	ct.Sys = published.Sys
	return nil
}

// OptionsFromContext maps an execution context to migration options
func OptionsFromContext(ec *config.ExecutionContext, filePath string, yes bool) Options {
	opts := Options{
		FilePath:              filePath,
		SpaceID:               ec.ActiveSpaceID,
		EnvironmentID:         ec.ActiveEnvironmentID,
		AccessToken:           ec.ManagementToken,
		Host:                  ec.Host,
		Proxy:                 ec.Proxy,
		Headers:               map[string]string{},
		ManagementApplication: "contentful.cli/" + config.Version,
		ManagementFeature:     "space-migration",
		Yes:                   yes,
	}
	if ec.Insecure != nil {
		opts.Insecure = *ec.Insecure
	}
	if ec.RawProxy != nil {
		opts.RawProxy = *ec.RawProxy
	}
	return opts
}
