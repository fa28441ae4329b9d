// Package main hosts the streamgap CLI entrypoint and command graph.
//
// The Cobra command tree fetches pending Ombi requests, joins them with TMDB
// watch providers, and prints the result per media kind or per provider. It
// also exposes cache maintenance, logo downloads, a read-only JSON server, and
// configuration scaffolding. Configuration resolution, logger construction,
// and service wiring live in commandContext so subcommands only render.
//
// Add behavior to the internal packages first and surface it here.
package main
