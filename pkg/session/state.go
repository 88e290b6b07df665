package session

import "github.com/jwill9999/authclient/pkg/apiclient"

// State is a point-in-time snapshot of the session.
//
// Ready flips to true exactly once, after the first restoration attempt
// settles, and never reverts. User is only populated while Token is held,
// except for the brief window between token adoption and profile fetch on
// the restore and provider-callback paths.
type State struct {
	Token string
	User  *apiclient.User
	Ready bool
}

// Authenticated reports whether a session is currently held.
func (s State) Authenticated() bool {
	return s.Token != ""
}
