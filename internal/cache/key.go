package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Key categories written by the TMDB catalog.
const (
	CategoryMovieProviders = "movie_providers"
	CategoryTVProviders    = "tv_providers"
	CategoryTVSearch       = "tv_search"
)

// Key is a composite cache key: a category followed by identifying parts.
type Key struct {
	Category string
	Parts    []string
}

// NewKey builds a key.
func NewKey(category string, parts ...string) Key {
	return Key{Category: category, Parts: parts}
}

// String encodes the key as a JSON array, the form stored on disk.
func (k Key) String() string {
	elems := make([]string, 0, len(k.Parts)+1)
	elems = append(elems, k.Category)
	elems = append(elems, k.Parts...)
	data, _ := json.Marshal(elems)
	return string(data)
}

// Part returns the i-th identifying part, or "" when absent.
func (k Key) Part(i int) string {
	if i < 0 || i >= len(k.Parts) {
		return ""
	}
	return k.Parts[i]
}

// ParseKey decodes the stored form of a key.
func ParseKey(encoded string) (Key, error) {
	var elems []string
	if err := json.Unmarshal([]byte(encoded), &elems); err != nil {
		return Key{}, fmt.Errorf("parse cache key %q: %w", encoded, err)
	}
	if len(elems) == 0 || strings.TrimSpace(elems[0]) == "" {
		return Key{}, errors.New("cache key has no category")
	}
	return Key{Category: elems[0], Parts: elems[1:]}, nil
}
