// Package server exposes the media views over a small read-only JSON HTTP API.
package server
