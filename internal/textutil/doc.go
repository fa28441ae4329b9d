// Package textutil sanitizes display names for use as file names.
package textutil
