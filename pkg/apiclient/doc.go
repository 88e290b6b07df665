// Package apiclient implements the client contract with the cookie+token
// authentication backend: token renewal, an authenticated request gateway
// and the auth endpoint surface.
//
// The backend issues two credentials. A short-lived access token travels as
// a bearer header and lives only in the credential store; a long-lived
// refresh cookie is server-managed and rides the client's cookie jar on
// every call. RefreshDetailed exchanges the cookie for a fresh token and
// classifies each attempt into a closed RefreshOutcome — concurrent callers
// collapse into a single network call and all observe the same result.
//
// # Gateway
//
// Do attaches the current bearer token and, on a first-attempt 401, renews
// the token once and replays the original request once. A second 401 is
// returned as is: the gateway never retries more than once per logical
// call.
//
//	creds := credential.NewStore()
//	client := apiclient.New(creds, apiclient.WithBaseURL("https://api.example.com"))
//
//	resp, err := client.Do(ctx, &apiclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/api/data",
//	})
//
// # Error Handling
//
// Expected failure classes never surface as errors from RefreshDetailed:
// they come back as typed outcomes (unauthorized, server_error,
// network_error, invalid_response). Endpoint helpers return *StatusError
// carrying the HTTP status and a display-ready message normalised from the
// backend's message/error field convention.
package apiclient
