// Package join attaches streaming providers to pending requests and slices
// the result by provider.
package join
