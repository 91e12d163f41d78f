package store

import "errors"

// Sentinel errors returned by Store implementations.
var (
	ErrBookmarkNotFound = errors.New("bookmark not found")
	ErrURLExists        = errors.New("a bookmark with this URL already exists")
	ErrShortURLExists   = errors.New("a bookmark with this short URL already exists")
)
