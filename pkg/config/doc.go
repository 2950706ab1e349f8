// Package config handles configuration management for fast.
// It layers embedded TOML defaults, an optional config.toml, an optional
// fast.env dotenv file and FAST_* environment variables using koanf.
package config
