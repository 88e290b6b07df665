package apiclient

import (
	"context"
	"net/http"
)

// GetProfile fetches the signed-in user's profile through the gateway.
func (c *Client) GetProfile(ctx context.Context) (map[string]any, error) {
	return c.getProtected(ctx, "/api/profile", "Failed to fetch profile")
}

// GetData fetches the protected dataset through the gateway.
func (c *Client) GetData(ctx context.Context) (map[string]any, error) {
	return c.getProtected(ctx, "/api/data", "Failed to fetch data")
}

func (c *Client) getProtected(ctx context.Context, path, fallback string) (map[string]any, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		var body AuthResponse
		decodeJSON(resp.Body, &body)
		return nil, &StatusError{Status: resp.StatusCode, Message: body.errorMessage(fallback)}
	}

	var out map[string]any
	decodeJSON(resp.Body, &out)
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}
