package session

import "time"

// Config holds session manager configuration
type Config struct {
	// RefreshInterval is how often the access token is proactively renewed
	// while a session is held. Renewing ahead of expiry avoids the latency
	// of a 401-then-retry round trip on protected calls.
	RefreshInterval time.Duration `env:"SESSION_REFRESH_INTERVAL" envDefault:"4m" yaml:"refresh_interval"`
}

// DefaultConfig returns default session manager configuration
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 4 * time.Minute,
	}
}
