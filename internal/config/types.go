package config

import (
	"fmt"
	"strings"
)

// Version is the CLI release reported to the API
const Version = "1.0.0"

// Defaults applied to every execution context after merging
const (
	DefaultEnvironmentID = "master"
	DefaultHost          = "api.contentful.com"
)

// ExecutionContext is the merged record threaded through every command.
// Empty strings and nil pointers mean the field is absent.
type ExecutionContext struct {
	ManagementToken     string `yaml:"managementToken,omitempty" json:"managementToken,omitempty"`
	ActiveSpaceID       string `yaml:"activeSpaceId,omitempty" json:"activeSpaceId,omitempty"`
	ActiveEnvironmentID string `yaml:"activeEnvironmentId,omitempty" json:"activeEnvironmentId,omitempty"`
	Host                string `yaml:"host,omitempty" json:"host,omitempty"`
	Insecure            *bool  `yaml:"insecure,omitempty" json:"insecure,omitempty"`
	RawProxy            *bool  `yaml:"rawProxy,omitempty" json:"rawProxy,omitempty"`
	Proxy               string `yaml:"proxy,omitempty" json:"proxy,omitempty"`
}

// Clone returns a deep copy so callers never alias the store's document
func (c *ExecutionContext) Clone() *ExecutionContext {
	if c == nil {
		return &ExecutionContext{}
	}
	out := *c
	if c.Insecure != nil {
		v := *c.Insecure
		out.Insecure = &v
	}
	if c.RawProxy != nil {
		v := *c.RawProxy
		out.RawProxy = &v
	}
	return &out
}

// Redacted returns a copy that is safe to print
func (c *ExecutionContext) Redacted() *ExecutionContext {
	out := c.Clone()
	if out.ManagementToken != "" {
		out.ManagementToken = MaskToken(out.ManagementToken)
	}
	return out
}

// MaskToken hides all but the last four characters of a credential
func MaskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

// Bool returns a pointer to v, for the optional boolean fields
func Bool(v bool) *bool {
	return &v
}

// GlobalConfig represents the CLI output settings
type GlobalConfig struct {
	OutputFormat  string       `yaml:"output" mapstructure:"output"` // json|yaml|table
	ColorsEnabled bool         `yaml:"colors" mapstructure:"colors"`
	Debug         bool         `yaml:"debug" mapstructure:"debug"`
	Events        EventsConfig `yaml:"events" mapstructure:"events"`
}

// EventsConfig configures the optional NATS audit event publisher
type EventsConfig struct {
	NATSURL       string `yaml:"nats_url" mapstructure:"nats_url"`
	SubjectPrefix string `yaml:"subject_prefix" mapstructure:"subject_prefix"`
	Token         string `yaml:"token" mapstructure:"token"`
	CredsFile     string `yaml:"creds_file" mapstructure:"creds_file"`
}

// Output format constants
const (
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"
)

// DefaultEventSubjectPrefix prefixes every published audit event subject
const DefaultEventSubjectPrefix = "contentful.cli"

// ValidateOutputFormat validates an output format
func ValidateOutputFormat(format string) error {
	validFormats := []string{OutputFormatJSON, OutputFormatYAML, OutputFormatTable}

	format = strings.ToLower(format)
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid output format '%s'. Valid options: %s",
		format, strings.Join(validFormats, ", "))
}

// Global configuration instance (will be populated by root command)
var Global = &GlobalConfig{
	OutputFormat:  OutputFormatTable,
	ColorsEnabled: true,
	Debug:         false,
	Events: EventsConfig{
		SubjectPrefix: DefaultEventSubjectPrefix,
	},
}
