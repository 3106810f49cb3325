// Package migration applies content model changes to an environment.
package migration

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"contentful-cli/internal/management"
	"contentful-cli/internal/utils"
)

// Step actions
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

var fieldTypes = map[string]bool{
	"Symbol": true, "Text": true, "RichText": true, "Integer": true, "Number": true,
	"Date": true, "Location": true, "Boolean": true, "Link": true, "Array": true, "Object": true,
}

// Plan is an ordered list of content type changes
type Plan struct {
	Steps []Step `yaml:"steps"`
}

// Step changes one content type
type Step struct {
	Action       string             `yaml:"action"`
	ContentType  string             `yaml:"contentType"`
	Name         string             `yaml:"name,omitempty"`
	Description  string             `yaml:"description,omitempty"`
	DisplayField string             `yaml:"displayField,omitempty"`
	Fields       []management.Field `yaml:"fields,omitempty"`
	DeleteFields []string           `yaml:"deleteFields,omitempty"`
}

// Describe returns a one-line summary of the step
func (s Step) Describe() string {
	switch s.Action {
	case ActionCreate:
		return fmt.Sprintf("Create content type %s (%d fields)", s.ContentType, len(s.Fields))
	case ActionUpdate:
		var parts []string
		if len(s.Fields) > 0 {
			parts = append(parts, fmt.Sprintf("add %d fields", len(s.Fields)))
		}
		if len(s.DeleteFields) > 0 {
			parts = append(parts, fmt.Sprintf("delete fields %s", strings.Join(s.DeleteFields, ", ")))
		}
		if s.Name != "" || s.Description != "" || s.DisplayField != "" {
			parts = append(parts, "change attributes")
		}
		return fmt.Sprintf("Update content type %s: %s", s.ContentType, strings.Join(parts, "; "))
	case ActionDelete:
		return fmt.Sprintf("Delete content type %s", s.ContentType)
	}
	return s.Action
}

// LoadPlan reads and validates a plan file
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration file: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes and validates a plan
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse migration file: %w", err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Validate checks every step before anything is sent to the API
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("migration contains no steps")
	}

	for i, step := range p.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	if err := utils.ValidateResourceID("content type", s.ContentType); err != nil {
		return err
	}

	switch s.Action {
	case ActionCreate:
		if s.Name == "" {
			return fmt.Errorf("create %s: name is required", s.ContentType)
		}
		if len(s.Fields) == 0 {
			return fmt.Errorf("create %s: at least one field is required", s.ContentType)
		}
		if len(s.DeleteFields) > 0 {
			return fmt.Errorf("create %s: deleteFields is not allowed", s.ContentType)
		}
	case ActionUpdate:
		if len(s.Fields) == 0 && len(s.DeleteFields) == 0 && s.Name == "" && s.Description == "" && s.DisplayField == "" {
			return fmt.Errorf("update %s: nothing to change", s.ContentType)
		}
	case ActionDelete:
		if len(s.Fields) > 0 || len(s.DeleteFields) > 0 {
			return fmt.Errorf("delete %s: fields are not allowed", s.ContentType)
		}
		return nil
	default:
		return fmt.Errorf("unknown action '%s'. Valid actions: create, update, delete", s.Action)
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if err := utils.ValidateResourceID("field", f.ID); err != nil {
			return err
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate field '%s' in %s", f.ID, s.ContentType)
		}
		seen[f.ID] = true
		if !fieldTypes[f.Type] {
			return fmt.Errorf("field '%s' has unknown type '%s'", f.ID, f.Type)
		}
		if f.Type == "Link" && f.LinkType != "Entry" && f.LinkType != "Asset" {
			return fmt.Errorf("field '%s': linkType must be Entry or Asset", f.ID)
		}
		if f.Type == "Array" && (f.Items == nil || (f.Items.Type != "Symbol" && f.Items.Type != "Link")) {
			return fmt.Errorf("field '%s': Array items must be Symbol or Link", f.ID)
		}
	}

	if s.DisplayField != "" && s.Action == ActionCreate && !seen[s.DisplayField] {
		return fmt.Errorf("displayField '%s' is not a field of %s", s.DisplayField, s.ContentType)
	}

	return nil
}
