package resolver

import (
	"strings"
	"testing"
)

func spaces() *Resolver {
	return New("space", []Candidate{
		{ID: "abc123", Name: "Marketing"},
		{ID: "abd456", Name: "Docs"},
		{ID: "xyz789", Name: "Mobile App"},
		{ID: "mob001", Name: "mobile"},
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr string
	}{
		{input: "abc123", want: "abc123"},
		{input: "docs", want: "abd456"},
		{input: "MOBILE", want: "mob001"},
		{input: "abc", want: "abc123"},
		{input: "xyz", want: "xyz789"},
		{input: "Mar", want: "abc123"},
		{input: "ab", wantErr: "ambiguous space 'ab'"},
		{input: "mob", wantErr: "ambiguous space 'mob'"},
		{input: "nope", wantErr: "unknown space 'nope'"},
		{input: " ", wantErr: "empty space identifier"},
	}

	r := spaces()
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := r.Resolve(tc.input)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.ID != tc.want {
				t.Fatalf("Resolve(%q) = %s, want %s", tc.input, got.ID, tc.want)
			}
		})
	}
}

func TestResolveDuplicateNames(t *testing.T) {
	r := New("environment", []Candidate{{ID: "a", Name: "Staging"}, {ID: "b", Name: "staging"}})
	_, err := r.Resolve("STAGING")
	if err == nil || !strings.Contains(err.Error(), "Staging (a), staging (b)") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSuggestIsSorted(t *testing.T) {
	got := spaces().Suggest("")
	if len(got) != 4 {
		t.Fatalf("expected all candidates, got %d", len(got))
	}
	s := spaces().Suggest("m")
	if len(s) != 3 || s[0].ID != "abc123" || s[1].ID != "mob001" || s[2].ID != "xyz789" {
		t.Fatalf("unexpected suggestions %+v", s)
	}
}

func TestMinimumPrefix(t *testing.T) {
	r := spaces()
	if p, err := r.MinimumPrefix("abc123"); err != nil || p != "abc" {
		t.Fatalf("got %q, %v", p, err)
	}
	if _, err := r.MinimumPrefix("missing"); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestLabel(t *testing.T) {
	if got := (Candidate{ID: "master", Name: "master"}).Label(); got != "master" {
		t.Fatalf("got %q", got)
	}
	if got := (Candidate{ID: "s1", Name: "Blog"}).Label(); got != "Blog (s1)" {
		t.Fatalf("got %q", got)
	}
}
