// Package tmdb is a small client for the TMDB endpoints streamgap needs:
// per-title watch providers, TV search, and the provider listing used for
// logos. Requests share a sliding-window rate limiter and are retried on
// throttling and server errors.
package tmdb
