package apiclient

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/sync/singleflight"

	"github.com/jwill9999/authclient/pkg/credential"
)

// Client talks to the authentication backend. It owns the cookie jar that
// carries the server-set long-lived refresh cookie, reads the in-memory
// access token from the credential store before each protected call, and
// updates that store whenever an endpoint issues a new token.
type Client struct {
	cfg     Config
	creds   *credential.Store
	http    *http.Client
	logger  *slog.Logger
	refresh singleflight.Group
}

// Option is a functional option for configuring the Client
type Option func(*Client)

// WithConfig sets custom configuration
func WithConfig(cfg Config) Option {
	return func(c *Client) {
		c.cfg = cfg
	}
}

// WithBaseURL overrides the backend root URL
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.cfg.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. The client should carry a
// cookie jar, otherwise the refresh cookie is lost between calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithLogger sets a custom logger for the client
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new API client bound to the given credential store.
func New(creds *credential.Store, opts ...Option) *Client {
	if creds == nil {
		// Fail fast on misconfiguration: every request path reads the store
		panic("apiclient: credential store is required")
	}

	c := &Client{
		cfg:    DefaultConfig(),
		creds:  creds,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		jar, _ := cookiejar.New(nil)
		c.http = &http.Client{
			Timeout: c.cfg.Timeout,
			Jar:     jar,
		}
	}

	return c
}

// decodeJSON fills v from an API response body. A body that is not a JSON
// object is treated as absent data rather than an error: v keeps its zero
// value and the caller falls back to status-code semantics.
func decodeJSON(r io.Reader, v any) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, v)
}

// drain discards and closes an abandoned response body so the underlying
// connection can be reused, leaving the response safe to hand back.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	resp.Body = http.NoBody
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
