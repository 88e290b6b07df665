package session

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithProfileStore sets a custom durable profile store
func WithProfileStore(store ProfileStore) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithConfig sets custom configuration
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.cfg = cfg
	}
}

// WithRefreshInterval sets the proactive renewal interval
func WithRefreshInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.cfg.RefreshInterval = interval
	}
}

// WithLogger sets a custom logger for the manager
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}
