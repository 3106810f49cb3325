package management

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func contentTypePath(spaceID, environmentID, contentTypeID string) string {
	return environmentPath(spaceID, environmentID) + "/content_types/" + url.PathEscape(contentTypeID)
}

// GetContentType retrieves a content type
func (c *Client) GetContentType(ctx context.Context, spaceID, environmentID, contentTypeID string) (*ContentType, error) {
	var ct ContentType
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   contentTypePath(spaceID, environmentID, contentTypeID),
		out:    &ct,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get content type '%s': %w", contentTypeID, err)
	}
	return &ct, nil
}

// PutContentType creates a content type (version 0) or updates it at version
func (c *Client) PutContentType(ctx context.Context, spaceID, environmentID string, ct *ContentType) (*ContentType, error) {
	headers := map[string]string{}
	if ct.Sys.Version > 0 {
		headers["X-Contentful-Version"] = strconv.Itoa(ct.Sys.Version)
	}

	var out ContentType
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   contentTypePath(spaceID, environmentID, ct.Sys.ID),
		body: contentTypeBody{
			Name:         ct.Name,
			Description:  ct.Description,
			DisplayField: ct.DisplayField,
			Fields:       ct.Fields,
		},
		headers: headers,
		out:     &out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save content type '%s': %w", ct.Sys.ID, err)
	}
	return &out, nil
}

// PublishContentType activates a content type at version
func (c *Client) PublishContentType(ctx context.Context, spaceID, environmentID, contentTypeID string, version int) (*ContentType, error) {
	var out ContentType
	_, err := c.do(ctx, request{
		method:  http.MethodPut,
		path:    contentTypePath(spaceID, environmentID, contentTypeID) + "/published",
		headers: map[string]string{"X-Contentful-Version": strconv.Itoa(version)},
		out:     &out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish content type '%s': %w", contentTypeID, err)
	}
	return &out, nil
}

// DeleteContentType deactivates and deletes a content type
func (c *Client) DeleteContentType(ctx context.Context, spaceID, environmentID, contentTypeID string) error {
	path := contentTypePath(spaceID, environmentID, contentTypeID)

	if _, err := c.do(ctx, request{method: http.MethodDelete, path: path + "/published"}); err != nil {
		// Draft content types have nothing to unpublish
		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.IsNotFoundError() {
			return fmt.Errorf("failed to unpublish content type '%s': %w", contentTypeID, err)
		}
	}

	if _, err := c.do(ctx, request{method: http.MethodDelete, path: path}); err != nil {
		return fmt.Errorf("failed to delete content type '%s': %w", contentTypeID, err)
	}
	return nil
}
