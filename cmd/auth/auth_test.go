package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contentful-cli/internal/config"
	"contentful-cli/internal/management"
	"contentful-cli/internal/session/sessiontest"
)

func newUserServer(t *testing.T, validToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/vnd.contentful.management.v1+json")
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"sys":{"type":"Error","id":"AccessTokenInvalid"},"message":"The access token you sent could not be found or is invalid."}`))
			return
		}
		w.Write([]byte(`{"sys":{"id":"user1"},"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginWithToken(t *testing.T) {
	srv := newUserServer(t, "CFPAT-new")
	h := sessiontest.New(t, &config.ExecutionContext{Host: srv.URL, ActiveSpaceID: "s1"}, "")
	SetSession(h.Session)

	if err := runLogin(context.Background(), "CFPAT-new"); err != nil {
		t.Fatal(err)
	}

	stored := h.Stored(t)
	if stored.ManagementToken != "CFPAT-new" || stored.ActiveSpaceID != "s1" {
		t.Fatalf("unexpected stored context %+v", stored)
	}
	if !strings.Contains(h.Out.String(), "Logged in as Ada Lovelace") {
		t.Fatalf("unexpected output %q", h.Out.String())
	}
}

func TestLoginPromptsForToken(t *testing.T) {
	srv := newUserServer(t, "CFPAT-typed")
	h := sessiontest.New(t, &config.ExecutionContext{Host: srv.URL}, "CFPAT-typed\n")
	SetSession(h.Session)

	if err := runLogin(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if got := h.Stored(t).ManagementToken; got != "CFPAT-typed" {
		t.Fatalf("stored token %q", got)
	}
	if !strings.Contains(h.Err.String(), "Management token: ") {
		t.Fatalf("expected token prompt, got %q", h.Err.String())
	}
}

func TestLoginKeepsExistingTokenWhenDeclined(t *testing.T) {
	h := sessiontest.New(t, &config.ExecutionContext{ManagementToken: "CFPAT-old"}, "n\n")
	SetSession(h.Session)

	if err := runLogin(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if h.Store.Saves != 0 || h.Stored(t).ManagementToken != "CFPAT-old" {
		t.Fatal("store must not change when the user declines")
	}
}

func TestLoginUsesTokenFromEnvironment(t *testing.T) {
	srv := newUserServer(t, "CFPAT-env")
	h := sessiontest.New(t, &config.ExecutionContext{ManagementToken: "CFPAT-old", Host: srv.URL}, "")
	h.Session.Context.ManagementToken = "CFPAT-env"
	SetSession(h.Session)

	if err := runLogin(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if got := h.Stored(t).ManagementToken; got != "CFPAT-env" {
		t.Fatalf("stored token %q", got)
	}
	if strings.Contains(h.Out.String(), "already logged in") || strings.Contains(h.Err.String(), "Management token: ") {
		t.Fatal("a supplied token must not prompt")
	}
}

func TestLoginRejectsInvalidToken(t *testing.T) {
	srv := newUserServer(t, "CFPAT-good")
	h := sessiontest.New(t, &config.ExecutionContext{Host: srv.URL}, "")
	SetSession(h.Session)

	err := runLogin(context.Background(), "CFPAT-bad")
	var apiErr *management.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsAuthenticationError() {
		t.Fatalf("expected authentication APIError, got %v", err)
	}
	if h.Store.Saves != 0 {
		t.Fatal("an invalid token must not be saved")
	}
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name      string
		yes       bool
		input     string
		wantToken string
	}{
		{name: "confirmed", input: "y\n", wantToken: ""},
		{name: "skip prompt", yes: true, wantToken: ""},
		{name: "declined", input: "n\n", wantToken: "CFPAT-x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ec := &config.ExecutionContext{ManagementToken: "CFPAT-x", ActiveSpaceID: "s1", Host: "api.contentful.com"}
			h := sessiontest.New(t, ec, tc.input)
			SetSession(h.Session)

			if err := runLogout(context.Background(), tc.yes); err != nil {
				t.Fatal(err)
			}
			stored := h.Stored(t)
			if stored.ManagementToken != tc.wantToken {
				t.Fatalf("token = %q, want %q", stored.ManagementToken, tc.wantToken)
			}
			if stored.ActiveSpaceID != "s1" || stored.Host != "api.contentful.com" {
				t.Fatalf("logout must only clear the token, got %+v", stored)
			}
		})
	}
}

func TestValidateSession(t *testing.T) {
	SetSession(nil)
	if err := runLogout(context.Background(), true); err == nil {
		t.Fatal("expected error without session")
	}
}
