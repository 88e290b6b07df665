package apiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// Request describes one call through the authenticated gateway. Body is
// kept as a byte slice so the request can be replayed after a token
// renewal with the exact same payload.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Do sends the request with the current bearer token attached. A 401 on
// the first attempt triggers exactly one token renewal followed by exactly
// one replay of the original request; the replay's response is returned
// even when it is itself a failure, and a second 401 never triggers
// another renewal. When the renewal does not produce a token the original
// 401 response is returned with its body already drained.
func (c *Client) Do(ctx context.Context, req *Request) (*http.Response, error) {
	token, _ := c.creds.Get()

	resp, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	drain(resp)

	res := c.RefreshDetailed(ctx)
	if res.Outcome != OutcomeSuccess || res.Token == "" {
		return resp, nil
	}

	return c.send(ctx, req, res.Token)
}

func (c *Client) send(ctx context.Context, req *Request, token string) (*http.Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.cfg.BaseURL+req.Path, body)
	if err != nil {
		return nil, err
	}

	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return c.http.Do(httpReq)
}
