// Package id generates the short keys that identify bookmarks in URLs.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// shortKeyAlphabet matches the characters allowed in a bookmark short key.
	// Alphanumeric only so keys survive copy/paste and legacy imports.
	shortKeyAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// ShortKeyLength is the length of every generated short key.
	ShortKeyLength = 8
)

// NewShortKey creates a random 8-character alphanumeric bookmark key.
// Uniqueness is not guaranteed here; callers retry against the store
// until no collision exists.
//
// Returns an error if the system has insufficient entropy for secure
// random generation.
func NewShortKey() (string, error) {
	key, err := gonanoid.Generate(shortKeyAlphabet, ShortKeyLength)
	if err != nil {
		return "", fmt.Errorf("generate short key: %w", err)
	}
	return key, nil
}

// MustNewShortKey is like NewShortKey but panics if generation fails.
// Use only where failure should crash the program (e.g. tests, seeding).
func MustNewShortKey() string {
	key, err := NewShortKey()
	if err != nil {
		panic(fmt.Sprintf("failed to generate short key: %v", err))
	}
	return key
}
