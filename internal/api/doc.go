// Package api is the read-only service layer shared by the CLI and the HTTP
// server. MediaService fetches a snapshot of pending requests, attaches
// providers, and slices the result; the converters in this package turn the
// domain values into transport-friendly DTOs.
//
// DTOs use camelCase JSON tags for JavaScript/TypeScript consumers. Request
// kinds are exposed as the lowercase strings "movie" and "tv", and years as
// text with "N/A" for unknown release dates.
package api
