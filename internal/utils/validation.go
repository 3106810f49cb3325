package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	resourceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
	subjectPattern    = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
)

// ValidateResourceID validates a space, environment or content type ID
func ValidateResourceID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s ID cannot be empty", kind)
	}

	if !resourceIDPattern.MatchString(id) {
		return fmt.Errorf("%s ID '%s' may only contain letters, numbers, dots, hyphens and underscores", kind, id)
	}

	if len(id) > 64 {
		return fmt.Errorf("%s ID must be 64 characters or less", kind)
	}

	return nil
}

// ValidateHost validates an API host, with or without a scheme
func ValidateHost(host string) error {
	if host == "" {
		return fmt.Errorf("host cannot be empty")
	}

	raw := host
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid host format: %w", err)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid host '%s'", host)
	}

	return nil
}

// ValidateRequiredString validates that a string is not empty
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateEventSubject validates a NATS subject used for audit events
func ValidateEventSubject(subject string) error {
	if subject == "" {
		return fmt.Errorf("event subject cannot be empty")
	}

	if !subjectPattern.MatchString(subject) {
		return fmt.Errorf("invalid event subject '%s'. Use letters, numbers, dots, hyphens and underscores", subject)
	}

	if strings.HasPrefix(subject, ".") || strings.HasSuffix(subject, ".") || strings.Contains(subject, "..") {
		return fmt.Errorf("invalid event subject '%s': empty token", subject)
	}

	return nil
}
