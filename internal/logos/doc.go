// Package logos downloads the logo of every streaming provider TMDB lists for
// a region into a local directory, naming each file after the provider.
package logos
