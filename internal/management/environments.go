package management

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func environmentPath(spaceID, environmentID string) string {
	return spacePath(spaceID) + "/environments/" + url.PathEscape(environmentID)
}

// ListEnvironments returns the environments of a space
func (c *Client) ListEnvironments(ctx context.Context, spaceID string) ([]Environment, error) {
	envs, err := listAll[Environment](ctx, c, spacePath(spaceID)+"/environments")
	if err != nil {
		return nil, fmt.Errorf("failed to list environments: %w", err)
	}
	return envs, nil
}

// GetEnvironment retrieves a single environment
func (c *Client) GetEnvironment(ctx context.Context, spaceID, environmentID string) (*Environment, error) {
	var env Environment
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   environmentPath(spaceID, environmentID),
		out:    &env,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get environment '%s': %w", environmentID, err)
	}
	return &env, nil
}

// CreateEnvironment creates environmentID, cloned from source when set
func (c *Client) CreateEnvironment(ctx context.Context, spaceID, environmentID, name, source string) (*Environment, error) {
	if name == "" {
		name = environmentID
	}

	headers := map[string]string{}
	if source != "" {
		headers["X-Contentful-Source-Environment"] = source
	}

	var env Environment
	_, err := c.do(ctx, request{
		method:  http.MethodPut,
		path:    environmentPath(spaceID, environmentID),
		body:    map[string]string{"name": name},
		headers: headers,
		out:     &env,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create environment '%s': %w", environmentID, err)
	}
	return &env, nil
}

// DeleteEnvironment deletes an environment
func (c *Client) DeleteEnvironment(ctx context.Context, spaceID, environmentID string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: environmentPath(spaceID, environmentID)})
	if err != nil {
		return fmt.Errorf("failed to delete environment '%s': %w", environmentID, err)
	}
	return nil
}
