// Package middleware resolves the effective execution context for a command
// and decides whether the command may run against it.
package middleware

import (
	"context"
	"fmt"

	"contentful-cli/internal/config"
)

// InvocationArgs are the per-invocation inputs gathered from flags and the
// environment. Every field is optional.
type InvocationArgs struct {
	ManagementToken     string
	SpaceID             string
	ActiveSpaceID       string
	EnvironmentID       string
	ActiveEnvironmentID string
	// Insecure keeps the raw textual value so "true"/"false" coercion
	// happens in one place. nil means not supplied.
	Insecure *string
	Host     string
	RawProxy *bool
	Proxy    string
}

// BuildContext merges the persisted store with args and applies defaults.
// Store errors are returned wrapped, never masked.
func BuildContext(ctx context.Context, store config.Store, args InvocationArgs) (*config.ExecutionContext, error) {
	base, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load context: %w", err)
	}

	ec := base.Clone()

	if args.ManagementToken != "" {
		ec.ManagementToken = args.ManagementToken
	}

	if space := firstNonEmpty(args.SpaceID, args.ActiveSpaceID); space != "" {
		ec.ActiveSpaceID = space
	}

	if environment := firstNonEmpty(args.EnvironmentID, args.ActiveEnvironmentID); environment != "" {
		ec.ActiveEnvironmentID = environment
	}
	if ec.ActiveEnvironmentID == "" {
		ec.ActiveEnvironmentID = config.DefaultEnvironmentID
	}

	// Only included if explicitly set; anything but "true" is false
	if args.Insecure != nil {
		ec.Insecure = config.Bool(*args.Insecure == "true")
	}

	if args.Host != "" {
		ec.Host = args.Host
	}
	if ec.Host == "" {
		ec.Host = config.DefaultHost
	}

	if args.RawProxy != nil {
		ec.RawProxy = config.Bool(*args.RawProxy)
	}
	if args.Proxy != "" {
		ec.Proxy = args.Proxy
	}

	return ec, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
