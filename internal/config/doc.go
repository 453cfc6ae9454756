// Package config loads and validates application settings from the
// environment and optional config files, giving the rest of the server
// typed access to them.
package config
