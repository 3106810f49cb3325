package management

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// APIError represents a structured Management API error
type APIError struct {
	StatusCode int
	ID         string
	Message    string
	RequestID  string
	Details    map[string]interface{}
	RawBody    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.GetFriendlyMessage()
}

// NewAPIError creates an APIError from an HTTP response
func NewAPIError(resp *resty.Response) *APIError {
	err := &APIError{
		StatusCode: resp.StatusCode(),
		RawBody:    string(resp.Body()),
	}

	var errorResp struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
		Message   string                 `json:"message"`
		RequestID string                 `json:"requestId"`
		Details   map[string]interface{} `json:"details"`
	}

	if jsonErr := json.Unmarshal(resp.Body(), &errorResp); jsonErr == nil && errorResp.Sys.ID != "" {
		err.ID = errorResp.Sys.ID
		err.Message = errorResp.Message
		err.RequestID = errorResp.RequestID
		err.Details = errorResp.Details
	} else {
		err.Message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))
	}

	return err
}

// GetFriendlyMessage returns a user-facing description of the error
func (e *APIError) GetFriendlyMessage() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return "the management token is invalid or has expired"
	case http.StatusForbidden:
		return "access denied. The management token is not allowed to perform this action"
	case http.StatusNotFound:
		return e.notFoundMessage()
	case http.StatusConflict:
		return "version conflict. The resource was changed by someone else, fetch it and try again"
	case http.StatusUnprocessableEntity:
		return e.validationMessage()
	case http.StatusTooManyRequests:
		return "rate limit exceeded. Please wait a moment before trying again"
	}

	if e.StatusCode >= 500 {
		return fmt.Sprintf("Contentful server error (HTTP %d)%s", e.StatusCode, e.requestSuffix())
	}

	if e.Message != "" {
		return fmt.Sprintf("Contentful error: %s%s", e.Message, e.requestSuffix())
	}

	return fmt.Sprintf("unexpected error occurred (HTTP %d)", e.StatusCode)
}

func (e *APIError) notFoundMessage() string {
	msgLower := strings.ToLower(e.Message)
	if strings.Contains(msgLower, "environment") {
		return "the requested environment was not found"
	}
	if strings.Contains(msgLower, "space") {
		return "the requested space was not found or you don't have access to it"
	}
	return "the requested resource could not be found"
}

func (e *APIError) validationMessage() string {
	errs, ok := e.Details["errors"].([]interface{})
	if !ok || len(errs) == 0 {
		if e.Message != "" {
			return fmt.Sprintf("validation failed: %s", e.Message)
		}
		return "validation failed. Please check your input and try again"
	}

	var messages []string
	for _, raw := range errs {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := item["name"].(string)
		details, _ := item["details"].(string)
		if details == "" {
			details = name
		}
		if path, ok := item["path"].([]interface{}); ok && len(path) > 0 {
			parts := make([]string, 0, len(path))
			for _, p := range path {
				parts = append(parts, fmt.Sprint(p))
			}
			details = fmt.Sprintf("%s: %s", strings.Join(parts, "."), details)
		}
		messages = append(messages, details)
	}

	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(messages, "\n  - "))
}

func (e *APIError) requestSuffix() string {
	if e.RequestID == "" {
		return ""
	}
	return fmt.Sprintf(" [request %s]", e.RequestID)
}

// IsAuthenticationError checks if the error is related to authentication
func (e *APIError) IsAuthenticationError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.ID == "AccessTokenInvalid"
}

// IsPermissionError checks if the error is related to permissions
func (e *APIError) IsPermissionError() bool {
	return e.StatusCode == http.StatusForbidden || e.ID == "AccessDenied"
}

// IsNotFoundError checks if the error is a not found error
func (e *APIError) IsNotFoundError() bool {
	return e.StatusCode == http.StatusNotFound || e.ID == "NotFound"
}

// IsRetryable reports whether the request may succeed when repeated
func (e *APIError) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Suggestion returns a helpful next step based on the error type
func (e *APIError) Suggestion() string {
	switch {
	case e.IsAuthenticationError():
		return "run 'contentful login' to store a valid management token"
	case e.IsPermissionError():
		return "check the roles of your user in the space or organization"
	case e.IsNotFoundError():
		return "verify the space and environment IDs with 'contentful config list'"
	case e.StatusCode == http.StatusConflict:
		return "re-run the command to pick up the latest version"
	case e.StatusCode >= 500:
		return "this appears to be a server issue. Please try again later"
	}
	return ""
}
