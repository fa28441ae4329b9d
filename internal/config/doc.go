// Package config loads, normalizes, and validates streamgap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OMBI_API_KEY, OMBI_BASE_URL, and TMDB_API_KEY. The Config type centralizes
// the credentials, cache location, fan-out limits, and logging settings the CLI
// and API server need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors before any network call is made.
package config
