package space

import (
	"contentful-cli/internal/management"
	"contentful-cli/internal/resolver"
)

func spaceCandidates(spaces []management.Space) []resolver.Candidate {
	candidates := make([]resolver.Candidate, len(spaces))
	for i, s := range spaces {
		candidates[i] = resolver.Candidate{ID: s.Sys.ID, Name: s.Name}
	}
	return candidates
}
