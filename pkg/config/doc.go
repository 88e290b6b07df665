// Package config loads configuration structs from environment variables,
// an optional .env file and optional YAML configuration files.
//
// Packages in this module declare their own Config structs with `env` and
// `yaml` tags; consumers populate them with Load, MustLoad or LoadFile.
// Precedence is environment over file over tag defaults.
//
//	var cfg apiclient.Config
//	config.MustLoad(&cfg)
//
// For client binaries carrying a config file:
//
//	if err := config.LoadFile(path, &cfg); err != nil { ... }
package config
