// Package credential provides an in-memory holder for the short-lived
// access token shared between the API client and the session manager.
package credential
