package repository

import "errors"

// Sentinel errors shared by all repository implementations. Services map
// these onto the API error taxonomy.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
