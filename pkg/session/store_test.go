package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwill9999/authclient/pkg/apiclient"
	"github.com/jwill9999/authclient/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("load on empty store", func(t *testing.T) {
		store := session.NewMemoryStore()
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, session.ErrProfileNotFound)
	})

	t.Run("save then load returns a copy", func(t *testing.T) {
		store := session.NewMemoryStore()
		user := &apiclient.User{ID: "1", Email: "a@b.com"}
		require.NoError(t, store.Save(ctx, user))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, user, loaded)

		loaded.Email = "mutated@b.com"
		again, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", again.Email)
	})

	t.Run("nil profile is rejected", func(t *testing.T) {
		store := session.NewMemoryStore()
		assert.ErrorIs(t, store.Save(ctx, nil), session.ErrNilProfile)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		store := session.NewMemoryStore()
		require.NoError(t, store.Save(ctx, &apiclient.User{Email: "a@b.com"}))
		require.NoError(t, store.Delete(ctx))

		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, session.ErrProfileNotFound)
	})
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())
		user := &apiclient.User{ID: "1", Email: "a@b.com", Name: "Jo"}
		require.NoError(t, store.Save(ctx, user))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, user, loaded)
	})

	t.Run("missing file", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, session.ErrProfileNotFound)
	})

	t.Run("creates nested directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "state", "auth")
		store := session.NewFileStore(dir)
		require.NoError(t, store.Save(ctx, &apiclient.User{Email: "a@b.com"}))

		_, err := os.Stat(filepath.Join(dir, "user.json"))
		assert.NoError(t, err)
	})

	t.Run("malformed record", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{broken"), 0o600))

		store := session.NewFileStore(dir)
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, session.ErrProfileMalformed)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := session.NewFileStore(t.TempDir())
		assert.NoError(t, store.Delete(ctx))

		require.NoError(t, store.Save(ctx, &apiclient.User{Email: "a@b.com"}))
		assert.NoError(t, store.Delete(ctx))
		assert.NoError(t, store.Delete(ctx))
	})

	t.Run("record is written with restrictive permissions", func(t *testing.T) {
		dir := t.TempDir()
		store := session.NewFileStore(dir)
		require.NoError(t, store.Save(ctx, &apiclient.User{Email: "a@b.com"}))

		info, err := os.Stat(filepath.Join(dir, "user.json"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}
