package management

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateSpaceRequest is the body of a space creation
type CreateSpaceRequest struct {
	Name          string `json:"name"`
	DefaultLocale string `json:"defaultLocale,omitempty"`
}

func spacePath(spaceID string) string {
	return "/spaces/" + url.PathEscape(spaceID)
}

// ListSpaces returns every space the user can access
func (c *Client) ListSpaces(ctx context.Context) ([]Space, error) {
	spaces, err := listAll[Space](ctx, c, "/spaces")
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	return spaces, nil
}

// GetSpace retrieves a single space
func (c *Client) GetSpace(ctx context.Context, spaceID string) (*Space, error) {
	var space Space
	if _, err := c.do(ctx, request{method: http.MethodGet, path: spacePath(spaceID), out: &space}); err != nil {
		return nil, fmt.Errorf("failed to get space '%s': %w", spaceID, err)
	}
	return &space, nil
}

// CreateSpace creates a space, in organizationID when the user has several
func (c *Client) CreateSpace(ctx context.Context, organizationID string, body CreateSpaceRequest) (*Space, error) {
	headers := map[string]string{}
	if organizationID != "" {
		headers["X-Contentful-Organization"] = organizationID
	}

	var space Space
	_, err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/spaces",
		body:    body,
		headers: headers,
		out:     &space,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create space: %w", err)
	}
	return &space, nil
}

// RenameSpace updates the name of a space at the given version
func (c *Client) RenameSpace(ctx context.Context, spaceID string, version int, name string) (*Space, error) {
	var space Space
	_, err := c.do(ctx, request{
		method:  http.MethodPut,
		path:    spacePath(spaceID),
		body:    map[string]string{"name": name},
		headers: map[string]string{"X-Contentful-Version": strconv.Itoa(version)},
		out:     &space,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update space '%s': %w", spaceID, err)
	}
	return &space, nil
}

// DeleteSpace deletes a space and all of its content
func (c *Client) DeleteSpace(ctx context.Context, spaceID string) error {
	if _, err := c.do(ctx, request{method: http.MethodDelete, path: spacePath(spaceID)}); err != nil {
		return fmt.Errorf("failed to delete space '%s': %w", spaceID, err)
	}
	return nil
}
