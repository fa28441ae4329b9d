// Package providers holds the streaming provider registry and the resolver
// that maps catalog provider names onto canonical identities.
package providers
