// Package config loads the service settings from environment variables,
// optionally seeded from a .env file. Required values are validated at
// startup so a misconfigured process fails fast instead of at first request.
package config
