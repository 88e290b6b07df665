package session

import (
	"context"

	"github.com/jwill9999/authclient/pkg/apiclient"
)

// API is the slice of the backend surface the session manager drives.
// *apiclient.Client satisfies it; tests substitute a fake.
type API interface {
	RefreshDetailed(ctx context.Context) apiclient.RefreshResult
	Login(ctx context.Context, email, password string) (*apiclient.AuthResponse, error)
	Register(ctx context.Context, email, password, name string) (*apiclient.AuthResponse, error)
	Logout(ctx context.Context) error
	LogoutAll(ctx context.Context) error
	GetProfile(ctx context.Context) (map[string]any, error)
	GoogleLoginURL() string
}
