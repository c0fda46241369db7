// Package config loads typed application configuration from environment
// variables, optionally seeded from .env files.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. Parsed
// values are cached per Go type for the lifetime of the process; call Reset
// in tests that change the environment.
package config
