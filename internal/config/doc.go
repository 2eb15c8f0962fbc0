// Package config defines the application configuration and loads it from
// environment variables (FIELD_ prefix) and an optional config file.
package config
