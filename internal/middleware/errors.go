package middleware

import "fmt"

// AuthenticationRequiredError is returned when a command needs a management token
type AuthenticationRequiredError struct {
	Command string
}

func (e *AuthenticationRequiredError) Error() string {
	return fmt.Sprintf("you have to be logged in to run '%s'", e.Command)
}

// Suggestion tells the user how to authenticate
func (e *AuthenticationRequiredError) Suggestion() string {
	return "run 'contentful login' or pass --management-token"
}

// SpaceIDRequiredError is returned when a command needs an active space
type SpaceIDRequiredError struct {
	Command string
}

func (e *SpaceIDRequiredError) Error() string {
	return fmt.Sprintf("you need to provide a space ID to run '%s'", e.Command)
}

// Suggestion tells the user how to select a space
func (e *SpaceIDRequiredError) Suggestion() string {
	return "run 'contentful space use' to select a space or pass --space-id"
}
