package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var defaultEnvLoaded sync.Once

// Load populates cfg from environment variables based on `env` field tags.
// The first call loads the default .env file; the file is optional and a
// missing one is not an error.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilPointer
	}

	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the process cannot start without.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}

// LoadFile reads a YAML configuration file into cfg with precedence
// environment over file over tag defaults. Fields marked `env:"X,required"`
// must come from the environment; the file does not satisfy them.
func LoadFile[T any](path string, cfg *T) error {
	if cfg == nil {
		return ErrNilPointer
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingFile, err)
	}

	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})

	// Apply the three layers lowest-precedence first: tag defaults (empty
	// environment so nothing else leaks in), then the file, then only the
	// environment variables that are actually set (defaults disabled so
	// they cannot stomp file values).
	if err := env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if err := env.ParseWithOptions(cfg, env.Options{DefaultValueTagName: "-"}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
