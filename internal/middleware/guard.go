package middleware

import (
	"errors"

	"contentful-cli/internal/config"
)

// AssertContext checks ec against the requirements of cmd under DefaultPolicy
func AssertContext(cmd string, ec *config.ExecutionContext) error {
	return DefaultPolicy.Assert(cmd, ec)
}

// Assert runs every check the policy requires for cmd. The checks are
// independent; all failures are returned joined. An empty cmd is never checked.
func (p Policy) Assert(cmd string, ec *config.ExecutionContext) error {
	if cmd == "" {
		return nil
	}
	if ec == nil {
		ec = &config.ExecutionContext{}
	}

	req := p.Lookup(cmd)

	var errs []error
	if req.RequiresAuth {
		errs = append(errs, checkLoggedIn(cmd, ec))
	}
	if req.RequiresSpace {
		errs = append(errs, checkSpaceProvided(cmd, ec))
	}

	return errors.Join(errs...)
}

func checkLoggedIn(cmd string, ec *config.ExecutionContext) error {
	if ec.ManagementToken == "" {
		return &AuthenticationRequiredError{Command: cmd}
	}
	return nil
}

func checkSpaceProvided(cmd string, ec *config.ExecutionContext) error {
	if ec.ActiveSpaceID == "" {
		return &SpaceIDRequiredError{Command: cmd}
	}
	return nil
}
