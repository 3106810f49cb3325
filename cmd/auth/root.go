package auth

import (
	"fmt"

	"contentful-cli/internal/session"
)

var sess *session.Session

// SetSession sets the invocation session for the auth commands
func SetSession(s *session.Session) {
	sess = s
}

// validateSession ensures the session is available
func validateSession() error {
	if sess == nil {
		return fmt.Errorf("session not initialized")
	}
	return nil
}
