package middleware

import "strings"

// Requirement describes what a command needs from the execution context
type Requirement struct {
	RequiresAuth  bool
	RequiresSpace bool
}

// Policy maps a space-joined command path (without the binary name) to its
// requirements. Commands missing from the policy require everything.
type Policy map[string]Requirement

var requireAll = Requirement{RequiresAuth: true, RequiresSpace: true}

// DefaultPolicy lists the commands that are exempt from at least one check
var DefaultPolicy = Policy{
	"config add":        {},
	"config list":       {},
	"config remove":     {},
	"login":             {},
	"logout":            {RequiresAuth: true},
	"space create":      {RequiresAuth: true},
	"space list":        {RequiresAuth: true},
	"space use":         {RequiresAuth: true},
	"organization list": {RequiresAuth: true},
	"events tail":       {},

	// cobra built-ins
	"help":                  {},
	"completion":            {},
	"completion bash":       {},
	"completion fish":       {},
	"completion powershell": {},
	"completion zsh":        {},
	"__complete":            {},
	"__completeNoDesc":      {},
}

// Lookup returns the requirement for cmd. Membership is by exact path.
func (p Policy) Lookup(cmd string) Requirement {
	if req, ok := p[cmd]; ok {
		return req
	}
	return requireAll
}

// CommandKey strips the binary name from a cobra command path.
// "contentful space use" becomes "space use"; the root command yields "".
func CommandKey(commandPath string) string {
	fields := strings.Fields(commandPath)
	if len(fields) <= 1 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
