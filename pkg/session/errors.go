package session

import "errors"

var (
	// ErrProfileNotFound indicates no durable profile record exists
	ErrProfileNotFound = errors.New("session.profile_not_found")

	// ErrProfileMalformed indicates the durable profile record could not be decoded
	ErrProfileMalformed = errors.New("session.profile_malformed")

	// ErrNilProfile indicates a nil profile was passed to a store
	ErrNilProfile = errors.New("session.nil_profile")

	// ErrMissingAccessToken is returned by Login when the endpoint reported
	// success but no access token materialised. The text is display-ready.
	ErrMissingAccessToken = errors.New("Login failed: access token was not returned")

	// ErrProviderLogin is returned when the external identity-provider flow
	// did not produce a session. The text is display-ready.
	ErrProviderLogin = errors.New("Google authentication failed")
)
