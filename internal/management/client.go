// Package management is a small client for the Contentful Management API.
package management

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"contentful-cli/internal/config"
	"contentful-cli/internal/utils"
)

const (
	contentTypeHeader = "application/vnd.contentful.management.v1+json"
	pageLimit         = 100

	// DefaultRetryCount is the number of retries for rate-limited or failed requests
	DefaultRetryCount = 3
)

// Options configure a Client
type Options struct {
	Host        string
	Token       string
	Insecure    bool
	Proxy       string
	RawProxy    bool
	Application string
	Feature     string
	Timeout     time.Duration
	RetryCount  int
	RetryWait   time.Duration
}

// Client represents a Management API HTTP client
type Client struct {
	httpClient *resty.Client
	baseURL    string
	token      string
}

// NewClient creates a new Management API client
func NewClient(opts Options) *Client {
	client := resty.New()
	client.SetLogger(restyLogger{})

	baseURL := BaseURL(opts.Host)
	client.SetBaseURL(baseURL)

	client.SetHeader("Content-Type", contentTypeHeader)
	client.SetHeader("User-Agent", fmt.Sprintf("contentful-cli/%s", config.Version))
	client.SetHeader("X-Contentful-User-Agent", userAgent(opts.Application, opts.Feature))

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	client.SetTimeout(timeout)

	if opts.Token != "" {
		client.SetAuthToken(opts.Token)
	}

	if opts.Insecure {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	if opts.Proxy != "" {
		client.SetProxy(ProxyURL(opts.Proxy, opts.RawProxy))
	}

	retryWait := opts.RetryWait
	if retryWait == 0 {
		retryWait = time.Second
	}
	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(retryWait)
	client.SetRetryMaxWaitTime(10 * retryWait)
	client.AddRetryCondition(func(resp *resty.Response, err error) bool {
		if resp == nil {
			return false
		}
		return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500
	})

	if config.Global.Debug {
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			utils.Logger().Debug().Str("method", req.Method).Str("url", req.URL).Msg("management request")
			return nil
		})
	}

	return &Client{
		httpClient: client,
		baseURL:    baseURL,
		token:      opts.Token,
	}
}

// restyLogger sends resty's retry and failure messages to the debug logger.
// Outside --debug they are dropped; the error reporter prints the failure.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	utils.Logger().Debug().Str("source", "resty").Str("severity", "error").Msgf(strings.TrimSpace(format), v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	utils.Logger().Debug().Str("source", "resty").Str("severity", "warn").Msgf(strings.TrimSpace(format), v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	utils.Logger().Debug().Str("source", "resty").Msgf(strings.TrimSpace(format), v...)
}

// NewClientFromContext creates a client from an execution context
func NewClientFromContext(ec *config.ExecutionContext, feature string) *Client {
	opts := Options{
		Host:        ec.Host,
		Token:       ec.ManagementToken,
		Proxy:       ec.Proxy,
		Application: "contentful.cli/" + config.Version,
		Feature:     feature,
		RetryCount:  DefaultRetryCount,
	}
	if ec.Insecure != nil {
		opts.Insecure = *ec.Insecure
	}
	if ec.RawProxy != nil {
		opts.RawProxy = *ec.RawProxy
	}
	return NewClient(opts)
}

// BaseURL returns the API base URL for a host. Hosts that already carry a
// scheme are used verbatim.
func BaseURL(host string) string {
	if host == "" {
		host = config.DefaultHost
	}
	if strings.Contains(host, "://") {
		return strings.TrimRight(host, "/")
	}
	return "https://" + strings.TrimRight(host, "/")
}

// ProxyURL returns the proxy URL handed to the transport. Raw proxies are
// passed through untouched; otherwise a scheme-less value such as
// "user:pass@host:port" is treated as an HTTP proxy.
func ProxyURL(proxy string, raw bool) string {
	if raw || strings.Contains(proxy, "://") {
		return proxy
	}
	return "http://" + proxy
}

func userAgent(application, feature string) string {
	parts := []string{fmt.Sprintf("sdk contentful-cli/%s", config.Version)}
	if application != "" {
		parts = append(parts, "app "+application)
	}
	if feature != "" {
		parts = append(parts, "feature "+feature)
	}
	return strings.Join(parts, "; ")
}

// GetBaseURL returns the base URL requests are sent to
func (c *Client) GetBaseURL() string {
	return c.baseURL
}

// IsAuthenticated checks if the client has a management token
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

// request describes one API call
type request struct {
	method  string
	path    string
	body    interface{}
	headers map[string]string
	query   map[string]string
	out     interface{}
}

// do performs an HTTP request with error handling
func (c *Client) do(ctx context.Context, r request) (*resty.Response, error) {
	req := c.httpClient.R().SetContext(ctx)
	if r.body != nil {
		req.SetBody(r.body)
	}
	if len(r.headers) > 0 {
		req.SetHeaders(r.headers)
	}
	if len(r.query) > 0 {
		req.SetQueryParams(r.query)
	}

	utils.PrintDebug(fmt.Sprintf("Making %s request to %s%s", r.method, c.baseURL, r.path))

	resp, err := req.Execute(r.method, r.path)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	utils.PrintDebug(fmt.Sprintf("Response status: %d", resp.StatusCode()))

	if resp.StatusCode() >= 400 {
		return resp, NewAPIError(resp)
	}

	if r.out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), r.out); err != nil {
			return resp, fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return resp, nil
}

// listAll follows skip/limit pagination until every item is collected
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var items []T
	skip := 0

	for {
		var page collection[T]
		_, err := c.do(ctx, request{
			method: http.MethodGet,
			path:   path,
			query: map[string]string{
				"skip":  fmt.Sprintf("%d", skip),
				"limit": fmt.Sprintf("%d", pageLimit),
			},
			out: &page,
		})
		if err != nil {
			return nil, err
		}

		items = append(items, page.Items...)
		skip += len(page.Items)

		if len(page.Items) == 0 || skip >= page.Total {
			return items, nil
		}
	}
}

// GetCurrentUser returns the user the management token belongs to
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/users/me", out: &user}); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &user, nil
}

// ListOrganizations returns the organizations the user belongs to
func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	orgs, err := listAll[Organization](ctx, c, "/organizations")
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}
