package sessiontest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const notFoundBody = `{"sys":{"type":"Error","id":"NotFound"},"message":"The resource could not be found."}`

// Request is a call received by the fake API
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

type response struct {
	status int
	body   string
}

// API is a fake Management API. Unregistered routes answer 404.
type API struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]response
	requests []Request
}

// NewAPI starts a fake API that is closed when the test ends
func NewAPI(t testing.TB) *API {
	t.Helper()
	api := &API{routes: map[string]response{}}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

// Handle registers the response for method and path
func (a *API) Handle(method, path string, status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.routes[method+" "+path] = response{status: status, body: body}
}

// Requests returns the calls received so far
func (a *API) Requests() []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Request, len(a.requests))
	copy(out, a.requests)
	return out
}

// Find returns the first call to method and path
func (a *API) Find(method, path string) (Request, bool) {
	for _, r := range a.Requests() {
		if r.Method == method && r.Path == path {
			return r, true
		}
	}
	return Request{}, false
}

func (a *API) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	a.requests = append(a.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	resp, ok := a.routes[r.Method+" "+r.URL.Path]
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/vnd.contentful.management.v1+json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, notFoundBody)
		return
	}
	w.WriteHeader(resp.status)
	io.WriteString(w, resp.body)
}
