// Package config loads, normalizes, and validates the sublint TOML
// configuration file.
package config
