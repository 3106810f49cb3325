package resolver

import (
	"fmt"
	"sort"
	"strings"
)

// Candidate is a resource that can be selected by ID or name
type Candidate struct {
	ID   string
	Name string
}

// Label renders the candidate for error messages
func (c Candidate) Label() string {
	if c.Name == "" || c.Name == c.ID {
		return c.ID
	}
	return fmt.Sprintf("%s (%s)", c.Name, c.ID)
}

// Resolver handles partial matching of resource IDs and names
type Resolver struct {
	kind       string
	candidates []Candidate
}

// New creates a resolver for one kind of resource, e.g. "space"
func New(kind string, candidates []Candidate) *Resolver {
	c := make([]Candidate, len(candidates))
	copy(c, candidates)
	return &Resolver{kind: kind, candidates: c}
}

// Resolve returns the candidate identified by input. An exact ID match wins,
// then an exact case-insensitive name match, then a unique prefix of either.
func (r *Resolver) Resolve(input string) (Candidate, error) {
	if strings.TrimSpace(input) == "" {
		return Candidate{}, fmt.Errorf("empty %s identifier", r.kind)
	}

	for _, c := range r.candidates {
		if c.ID == input {
			return c, nil
		}
	}

	lower := strings.ToLower(input)

	var named []Candidate
	for _, c := range r.candidates {
		if strings.ToLower(c.Name) == lower {
			named = append(named, c)
		}
	}
	if len(named) == 1 {
		return named[0], nil
	}
	if len(named) > 1 {
		return Candidate{}, r.ambiguous(input, named)
	}

	matches := r.Suggest(input)
	switch len(matches) {
	case 0:
		return Candidate{}, fmt.Errorf("unknown %s '%s'. Available: %s",
			r.kind, input, r.labels(r.candidates))
	case 1:
		return matches[0], nil
	default:
		return Candidate{}, r.ambiguous(input, matches)
	}
}

// Suggest returns candidates whose ID or name starts with partial, sorted by ID
func (r *Resolver) Suggest(partial string) []Candidate {
	if partial == "" {
		return r.Candidates()
	}

	partial = strings.ToLower(partial)
	var suggestions []Candidate
	for _, c := range r.candidates {
		if strings.HasPrefix(strings.ToLower(c.ID), partial) || strings.HasPrefix(strings.ToLower(c.Name), partial) {
			suggestions = append(suggestions, c)
		}
	}

	sort.Slice(suggestions, func(i, j int) bool { return suggestions[i].ID < suggestions[j].ID })
	return suggestions
}

// Candidates returns a copy of all candidates
func (r *Resolver) Candidates() []Candidate {
	result := make([]Candidate, len(r.candidates))
	copy(result, r.candidates)
	return result
}

// MinimumPrefix returns the shortest prefix of id that resolves to it
func (r *Resolver) MinimumPrefix(id string) (string, error) {
	found := false
	for _, c := range r.candidates {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("%s '%s' not found", r.kind, id)
	}

	for i := 1; i <= len(id); i++ {
		matches := r.Suggest(id[:i])
		if len(matches) == 1 {
			return id[:i], nil
		}
	}
	return id, nil
}

func (r *Resolver) ambiguous(input string, matches []Candidate) error {
	return fmt.Errorf("ambiguous %s '%s'. Possible matches: %s", r.kind, input, r.labels(matches))
}

func (r *Resolver) labels(candidates []Candidate) string {
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.Label()
	}
	return strings.Join(labels, ", ")
}
