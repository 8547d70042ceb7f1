// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to provider credentials, pipeline limits and output settings while
// keeping configuration details separate from the generation pipeline, which
// receives a *Config instead of reading the environment itself.
package config
