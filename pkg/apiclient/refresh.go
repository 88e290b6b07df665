package apiclient

import (
	"context"
	"net/http"
)

// RefreshOutcome classifies the result of one token renewal attempt.
// Exactly one outcome results from every attempt.
type RefreshOutcome string

const (
	// OutcomeSuccess means a new access token was issued and stored.
	OutcomeSuccess RefreshOutcome = "success"

	// OutcomeUnauthorized means the refresh cookie was rejected (401/403).
	OutcomeUnauthorized RefreshOutcome = "unauthorized"

	// OutcomeServerError covers every other non-success status.
	OutcomeServerError RefreshOutcome = "server_error"

	// OutcomeNetworkError means no response was received.
	OutcomeNetworkError RefreshOutcome = "network_error"

	// OutcomeInvalidResponse means a success status arrived without a token.
	OutcomeInvalidResponse RefreshOutcome = "invalid_response"
)

// RefreshResult is the typed result of a renewal attempt. StatusCode is
// zero when no response was received.
type RefreshResult struct {
	Token      string
	Outcome    RefreshOutcome
	StatusCode int
}

type refreshResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// refreshKey collapses all concurrent renewals into one flight.
const refreshKey = "refresh"

// RefreshDetailed exchanges the long-lived refresh cookie for a fresh
// access token. Concurrent callers share a single network call and receive
// the identical result; the flight slot clears the moment the call
// settles, so a subsequent call starts a fresh exchange. On success the
// credential store is updated as a side effect; no other outcome mutates
// anything.
func (c *Client) RefreshDetailed(ctx context.Context) RefreshResult {
	v, _, _ := c.refresh.Do(refreshKey, func() (any, error) {
		return c.doRefresh(ctx), nil
	})
	return v.(RefreshResult)
}

// RefreshToken is a simplified form of RefreshDetailed for callers that do
// not care why a renewal failed.
func (c *Client) RefreshToken(ctx context.Context) (string, bool) {
	res := c.RefreshDetailed(ctx)
	return res.Token, res.Outcome == OutcomeSuccess
}

func (c *Client) doRefresh(ctx context.Context) RefreshResult {
	// The renewal carries only the ambient cookie, never the access token.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/auth/refresh", nil)
	if err != nil {
		return RefreshResult{Outcome: OutcomeNetworkError}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "token renewal failed in transit", "error", err)
		return RefreshResult{Outcome: OutcomeNetworkError}
	}
	defer resp.Body.Close()

	var body refreshResponse
	decodeJSON(resp.Body, &body)

	if !isSuccess(resp.StatusCode) {
		outcome := OutcomeServerError
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			outcome = OutcomeUnauthorized
		}
		return RefreshResult{Outcome: outcome, StatusCode: resp.StatusCode}
	}

	if body.Token == "" {
		return RefreshResult{Outcome: OutcomeInvalidResponse, StatusCode: resp.StatusCode}
	}

	c.creds.Set(body.Token)
	return RefreshResult{Token: body.Token, Outcome: OutcomeSuccess, StatusCode: resp.StatusCode}
}
