package management

import (
	"context"
	"fmt"
	"net/http"
)

// ListAPIKeys returns the delivery access tokens of a space
func (c *Client) ListAPIKeys(ctx context.Context, spaceID string) ([]APIKey, error) {
	keys, err := listAll[APIKey](ctx, c, spacePath(spaceID)+"/api_keys")
	if err != nil {
		return nil, fmt.Errorf("failed to list access tokens: %w", err)
	}
	return keys, nil
}

// CreateAPIKey creates a delivery access token for the given environments
func (c *Client) CreateAPIKey(ctx context.Context, spaceID string, body CreateAPIKeyRequest) (*APIKey, error) {
	var key APIKey
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   spacePath(spaceID) + "/api_keys",
		body:   body,
		out:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	return &key, nil
}
