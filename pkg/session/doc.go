// Package session implements the client-side session life cycle for a
// cookie+token authentication scheme: restoration on start, proactive
// token renewal on a timer, the login/register/logout transitions and
// hydration after an external identity-provider redirect.
//
// # Architecture
//
// A Manager orchestrates the life cycle. It drives an API (the apiclient
// surface), mirrors the access token held in a credential.Store, and
// persists the non-secret user profile through a pluggable ProfileStore.
// In-memory, file and Redis backed stores ship out of the box; the access
// token itself is never written to any of them.
//
//	┌──────────┐  login / renew   ┌───────────┐
//	│ Manager  │ ───────────────► │    API    │
//	└──────────┘                  └───────────┘
//	     │ profile record               │ token
//	     ▼                              ▼
//	┌──────────────┐            ┌──────────────────┐
//	│ ProfileStore │            │ credential.Store │
//	└──────────────┘            └──────────────────┘
//
// # Life cycle
//
// Start runs exactly one restoration: a silent renewal against the
// long-lived cookie, then adoption of the durable profile record when the
// renewal succeeds. The manager is ready after Start returns, whatever the
// outcome. While a token is held a ticker renews it every
// Config.RefreshInterval; an unauthorized renewal tears the session down,
// transient failures leave it untouched.
//
// # Usage
//
//	creds := credential.NewStore()
//	client := apiclient.New(creds, apiclient.WithBaseURL(apiURL))
//	manager := session.New(client, creds,
//	    session.WithProfileStore(session.NewFileStore(stateDir)),
//	)
//
//	manager.Start(ctx)
//	defer manager.Close()
//
//	if err := manager.Login(ctx, email, password); err != nil {
//	    // err carries a display-ready message
//	}
//
// HTTP consumers can gate routes with RequireAuth and terminate the
// provider redirect with CallbackHandler.
package session
