package session

import "net/http"

// RequireAuth gates access on an established session. Requests arriving
// before restoration settles get 503 with Retry-After so callers can poll;
// requests without a session are redirected to loginURL.
func (m *Manager) RequireAuth(loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := m.State()
			if !st.Ready {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "session restoring", http.StatusServiceUnavailable)
				return
			}
			if !st.Authenticated() {
				http.Redirect(w, r, loginURL, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CallbackHandler terminates the identity-provider redirect. The
// provider's "error" query parameter, when present, short-circuits the
// hydration and sends the browser to failureURL.
func (m *Manager) CallbackHandler(successURL, failureURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.CompleteProviderLogin(r.Context(), r.URL.Query().Get("error")); err != nil {
			http.Redirect(w, r, failureURL, http.StatusFound)
			return
		}
		http.Redirect(w, r, successURL, http.StatusFound)
	}
}
