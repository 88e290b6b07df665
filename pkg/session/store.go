package session

import (
	"context"

	"github.com/jwill9999/authclient/pkg/apiclient"
)

// ProfileStore persists the non-secret user profile across restarts. One
// record under one fixed key is the only durable state this module owns;
// the access token never goes through it.
type ProfileStore interface {
	// Load returns the stored profile, ErrProfileNotFound when no record
	// exists, or ErrProfileMalformed when the record cannot be decoded.
	Load(ctx context.Context) (*apiclient.User, error)

	// Save writes the profile, replacing any previous record.
	Save(ctx context.Context, user *apiclient.User) error

	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context) error
}
