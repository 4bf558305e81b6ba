// Package api implements service.Service against the task backend's REST API.
//
// Every request carries the stored session token as a bearer credential, and
// every failure is returned as an *Error classified as a server rejection, a
// missing response, or a request that could not be built.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/googleapi"

	"taskcli/internal/config"
	"taskcli/internal/logging"
	"taskcli/internal/service"
)

// Session is the token store the client reads and writes.
type Session interface {
	TokenSource
	Save(ctx context.Context, accessToken string) error
	Clear(ctx context.Context) error
	Present(ctx context.Context) bool
}

// credentialPaths answer 401 for bad credentials, not for a stale session.
var credentialPaths = map[string]bool{
	"auth/login":  true,
	"auth/signup": true,
}

// Options configures a Client.
type Options struct {
	// BaseURL is the backend origin; endpoint paths are resolved against it.
	BaseURL string

	// Timeout bounds each request. Zero means config.DefaultTimeout.
	Timeout time.Duration

	// Session provides and persists the bearer token. Required.
	Session Session

	// ClearOnUnauthorized removes the stored token when the backend answers 401.
	ClearOnUnauthorized bool

	// Logger receives warnings and debug traces. Nil discards them.
	Logger *slog.Logger

	// Transport is the underlying round tripper. Nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// Client implements service.Service over HTTP.
type Client struct {
	basePath            string
	http                *http.Client
	session             Session
	clearOnUnauthorized bool
	log                 *slog.Logger
}

var _ service.Service = (*Client)(nil)

// New creates a Client. The base URL must be an absolute http or https URL.
func New(opts Options) (*Client, error) {
	if opts.Session == nil {
		return nil, fmt.Errorf("api: session is required")
	}
	base, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("api: invalid base url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("api: base url must be an absolute http(s) url: %q", opts.BaseURL)
	}
	// Endpoint paths are relative, so the base must end in a slash to keep any path prefix.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		basePath: base.String(),
		http: &http.Client{
			Timeout: timeout,
			Transport: &bearerTransport{
				base:   transport,
				tokens: opts.Session,
				log:    logger,
			},
		},
		session:             opts.Session,
		clearOnUnauthorized: opts.ClearOnUnauthorized,
		log:                 logger,
	}, nil
}

// BaseURL returns the normalized backend origin.
func (c *Client) BaseURL() string {
	return c.basePath
}

// do performs one request and decodes a successful body into out.
// path is relative to the base URL and may contain {name} placeholders that
// are filled from params. in, when non-nil, is sent as the JSON body.
func (c *Client) do(ctx context.Context, method, path string, params map[string]string, in, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, params, in)
	if err != nil {
		c.log.Debug("request setup failed", "method", method, "path", path, "err", err)
		return setupError(err)
	}

	c.log.Debug("sending request", "method", method, "url", req.URL.String())
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("no response received", "method", method, "url", req.URL.String(), "err", err)
		return noResponse(err)
	}
	defer googleapi.CloseBody(res)

	if err := googleapi.CheckResponse(res); err != nil {
		apiErr := &Error{Kind: KindServerRejected, StatusCode: res.StatusCode, Err: err}
		if gerr, ok := err.(*googleapi.Error); ok {
			apiErr.Body = []byte(gerr.Body)
		}
		c.log.Debug("server rejected request", "method", method, "url", req.URL.String(),
			"status", res.StatusCode, "body", string(apiErr.Body))
		if apiErr.Unauthorized() && !credentialPaths[path] {
			c.handleUnauthorized(ctx)
		}
		return apiErr
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.log.Debug("reading response body failed", "method", method, "url", req.URL.String(), "err", err)
		return noResponse(err)
	}
	c.log.Debug("response received", "method", method, "url", req.URL.String(), "status", res.StatusCode)

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, params map[string]string, in interface{}) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	urls := googleapi.ResolveRelative(c.basePath, path)
	req, err := http.NewRequestWithContext(ctx, method, urls, body)
	if err != nil {
		return nil, err
	}
	for name, value := range params {
		if value == "" {
			return nil, fmt.Errorf("empty path parameter: %s", name)
		}
	}
	if len(params) > 0 {
		googleapi.Expand(req.URL, params)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// handleUnauthorized clears the stored session after a 401 when configured to.
func (c *Client) handleUnauthorized(ctx context.Context) {
	if !c.clearOnUnauthorized {
		return
	}
	if err := c.session.Clear(ctx); err != nil {
		c.log.Warn("clearing rejected session failed", "err", err)
		return
	}
	c.log.Debug("session rejected by server, stored token cleared")
}
