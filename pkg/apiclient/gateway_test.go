package apiclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwill9999/authclient/pkg/apiclient"
	"github.com/jwill9999/authclient/pkg/credential"
)

// scriptedBackend plays a fixed sequence of /api/data responses and a fixed
// /auth/refresh response, counting calls per endpoint.
type scriptedBackend struct {
	dataStatuses []int
	dataBody     string
	refreshBody  string
	refreshCode  int

	dataCalls    atomic.Int32
	refreshCalls atomic.Int32
	lastAuth     atomic.Value
}

func (b *scriptedBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			b.refreshCalls.Add(1)
			code := b.refreshCode
			if code == 0 {
				code = http.StatusOK
			}
			w.WriteHeader(code)
			w.Write([]byte(b.refreshBody))
		case "/api/data":
			n := int(b.dataCalls.Add(1))
			b.lastAuth.Store(r.Header.Get("Authorization"))
			status := b.dataStatuses[len(b.dataStatuses)-1]
			if n <= len(b.dataStatuses) {
				status = b.dataStatuses[n-1]
			}
			w.WriteHeader(status)
			if status == http.StatusOK {
				w.Write([]byte(b.dataBody))
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newGatewayClient(t *testing.T, backend *scriptedBackend) (*apiclient.Client, *credential.Store) {
	t.Helper()

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	creds := credential.NewStore()
	return apiclient.New(creds, apiclient.WithBaseURL(srv.URL)), creds
}

func TestDo_AttachesBearerToken(t *testing.T) {
	backend := &scriptedBackend{dataStatuses: []int{http.StatusOK}, dataBody: `{}`}
	client, creds := newGatewayClient(t, backend)
	creds.Set("T0")

	resp, err := client.Do(context.Background(), &apiclient.Request{Method: http.MethodGet, Path: "/api/data"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "Bearer T0", backend.lastAuth.Load())
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	backend := &scriptedBackend{dataStatuses: []int{http.StatusOK}, dataBody: `{}`}
	client, _ := newGatewayClient(t, backend)

	resp, err := client.Do(context.Background(), &apiclient.Request{Method: http.MethodGet, Path: "/api/data"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "", backend.lastAuth.Load())
}

func TestDo_RetriesOnceAfterRenewal(t *testing.T) {
	backend := &scriptedBackend{
		dataStatuses: []int{http.StatusUnauthorized, http.StatusOK},
		dataBody:     `{"id":"42"}`,
		refreshBody:  `{"success":true,"token":"T2"}`,
	}
	client, creds := newGatewayClient(t, backend)
	creds.Set("T-stale")

	resp, err := client.Do(context.Background(), &apiclient.Request{Method: http.MethodGet, Path: "/api/data"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"id":"42"}`, string(body))

	// Exactly three calls: original, renewal, retry.
	assert.Equal(t, int32(2), backend.dataCalls.Load())
	assert.Equal(t, int32(1), backend.refreshCalls.Load())
	assert.Equal(t, "Bearer T2", backend.lastAuth.Load(), "retry must carry the renewed token")
}

func TestDo_NoSecondRetry(t *testing.T) {
	backend := &scriptedBackend{
		dataStatuses: []int{http.StatusUnauthorized, http.StatusUnauthorized},
		refreshBody:  `{"success":true,"token":"T2"}`,
	}
	client, creds := newGatewayClient(t, backend)
	creds.Set("T-stale")

	resp, err := client.Do(context.Background(), &apiclient.Request{Method: http.MethodGet, Path: "/api/data"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(2), backend.dataCalls.Load(), "a 401 on the retry must not trigger a third call")
	assert.Equal(t, int32(1), backend.refreshCalls.Load())
}

func TestDo_FailedRenewalReturnsOriginal401(t *testing.T) {
	backend := &scriptedBackend{
		dataStatuses: []int{http.StatusUnauthorized},
		refreshCode:  http.StatusUnauthorized,
	}
	client, creds := newGatewayClient(t, backend)
	creds.Set("T-stale")

	resp, err := client.Do(context.Background(), &apiclient.Request{Method: http.MethodGet, Path: "/api/data"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(1), backend.dataCalls.Load())
	assert.Equal(t, int32(1), backend.refreshCalls.Load())

	// The unauthorized body was drained to free the connection.
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestDo_RetryReplaysMethodHeadersAndBody(t *testing.T) {
	type seen struct {
		method, accept, body string
	}
	var calls atomic.Int32
	var second atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			w.Write([]byte(`{"success":true,"token":"T2"}`))
			return
		}
		body, _ := io.ReadAll(r.Body)
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		second.Store(seen{method: r.Method, accept: r.Header.Get("Accept"), body: string(body)})
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	creds := credential.NewStore()
	creds.Set("T-stale")
	client := apiclient.New(creds, apiclient.WithBaseURL(srv.URL))

	header := http.Header{}
	header.Set("Accept", "application/json")
	resp, err := client.Do(context.Background(), &apiclient.Request{
		Method: http.MethodPost,
		Path:   "/api/items",
		Header: header,
		Body:   []byte(`{"k":"v"}`),
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	got, ok := second.Load().(seen)
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "application/json", got.accept)
	assert.Equal(t, `{"k":"v"}`, got.body)
}
