package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// User is the non-secret profile the backend returns alongside auth
// responses. Email is the only required field.
type User struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// AuthResponse is the wire shape of the login and register endpoints.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`

	// Message is the canonical user-facing field; Err is the legacy alias
	// still emitted by some endpoints.
	Message string `json:"message,omitempty"`
	Err     string `json:"error,omitempty"`
}

// errorMessage normalises the dual message/error convention with a fixed
// precedence: canonical field first, legacy field second, fallback last.
func (r *AuthResponse) errorMessage(fallback string) string {
	if r == nil {
		return fallback
	}
	if r.Message != "" {
		return r.Message
	}
	if r.Err != "" {
		return r.Err
	}
	return fallback
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Login authenticates with email and password. The server sets the
// long-lived refresh cookie on the client's cookie jar, and any issued
// access token is written to the credential store as a side effect.
// Failures return a *StatusError whose message is display-ready.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.postAuth(ctx, "/auth/login", loginPayload{Email: email, Password: password}, "Login failed")
}

// Register creates an account. Blank names are omitted from the payload.
// Some backends issue an access token on registration too; when present it
// is written to the credential store the same way Login does.
func (c *Client) Register(ctx context.Context, email, password, name string) (*AuthResponse, error) {
	payload := registerPayload{
		Email:    email,
		Password: password,
		Name:     strings.TrimSpace(name),
	}
	return c.postAuth(ctx, "/auth/register", payload, "Registration failed")
}

func (c *Client) postAuth(ctx context.Context, path string, payload any, fallback string) (*AuthResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out AuthResponse
	decodeJSON(resp.Body, &out)

	if !isSuccess(resp.StatusCode) || !out.Success {
		return nil, &StatusError{Status: resp.StatusCode, Message: out.errorMessage(fallback)}
	}

	if out.Token != "" {
		c.creds.Set(out.Token)
	}

	return &out, nil
}

// Logout revokes the current server session. The access token is cleared
// locally even when the request fails; the refresh cookie still travels so
// the server can revoke it.
func (c *Client) Logout(ctx context.Context) error {
	return c.revoke(ctx, "/auth/logout")
}

// LogoutAll revokes every server session for the user.
func (c *Client) LogoutAll(ctx context.Context) error {
	return c.revoke(ctx, "/auth/logout-all")
}

func (c *Client) revoke(ctx context.Context, path string) error {
	defer c.creds.Clear()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	if token, ok := c.creds.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// GoogleLoginURL returns the backend entry point for the Google sign-in
// flow. Navigating there is the caller's concern; the session is hydrated
// later, when the provider redirects back to the callback entry point.
func (c *Client) GoogleLoginURL() string {
	return c.cfg.BaseURL + "/auth/google"
}
