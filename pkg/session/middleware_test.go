package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwill9999/authclient/pkg/apiclient"
)

func TestRequireAuth(t *testing.T) {
	ctx := context.Background()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("protected"))
	})

	t.Run("503 before restoration settles", func(t *testing.T) {
		m, _, _ := setup(t)

		w := httptest.NewRecorder()
		m.RequireAuth("/login")(next).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
	})

	t.Run("redirects anonymous requests to login", func(t *testing.T) {
		m, api, _ := setup(t)
		api.refreshQueue = []apiclient.RefreshResult{{Outcome: apiclient.OutcomeUnauthorized, StatusCode: 401}}
		m.Start(ctx)

		w := httptest.NewRecorder()
		m.RequireAuth("/login")(next).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("passes authenticated requests through", func(t *testing.T) {
		m, api, _ := setup(t)
		api.refreshQueue = []apiclient.RefreshResult{refreshSuccess("T1")}
		m.Start(ctx)

		w := httptest.NewRecorder()
		m.RequireAuth("/login")(next).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "protected", w.Body.String())
	})
}

func TestCallbackHandler(t *testing.T) {
	t.Run("provider error redirects to the failure URL", func(t *testing.T) {
		m, _, _ := setup(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/auth/callback?error=access_denied", nil)
		m.CallbackHandler("/dashboard", "/login-failed").ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login-failed", w.Header().Get("Location"))
		assert.True(t, m.Ready(), "hydration must leave the manager ready")
	})

	t.Run("successful hydration redirects to the success URL", func(t *testing.T) {
		m, api, _ := setup(t)
		api.refreshQueue = []apiclient.RefreshResult{refreshSuccess("T3")}
		api.profile = map[string]any{"email": "g@test.com"}

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/auth/callback", nil)
		m.CallbackHandler("/dashboard", "/login-failed").ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
		assert.Equal(t, "T3", m.State().Token)
	})

	t.Run("failed renewal redirects to the failure URL", func(t *testing.T) {
		m, api, _ := setup(t)
		api.refreshQueue = []apiclient.RefreshResult{{Outcome: apiclient.OutcomeNetworkError}}

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/auth/callback", nil)
		m.CallbackHandler("/dashboard", "/login-failed").ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login-failed", w.Header().Get("Location"))
		assert.Empty(t, m.State().Token)
	})
}
