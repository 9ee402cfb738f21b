// Package config loads and validates the service configuration from the
// environment and an optional config file.
package config
