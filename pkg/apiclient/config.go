package apiclient

import "time"

// Config holds API client configuration
type Config struct {
	// BaseURL is the root URL of the authentication backend.
	BaseURL string `env:"AUTH_API_URL" envDefault:"http://localhost:3000" yaml:"base_url"`

	// Timeout bounds every outbound request, renewal included.
	Timeout time.Duration `env:"AUTH_API_TIMEOUT" envDefault:"15s" yaml:"timeout"`
}

// DefaultConfig returns default API client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:3000",
		Timeout: 15 * time.Second,
	}
}
