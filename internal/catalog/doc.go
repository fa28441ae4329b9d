// Package catalog answers "where can I stream this" questions from TMDB,
// reading through the persistent cache. Upstream failures degrade to empty
// answers and are never cached.
package catalog
