package repository

import "errors"

// Sentinel kinds for ranking store errors.
var (
	ErrNotFound     = errors.New("swimmer not ranked")
	ErrInvalidLimit = errors.New("invalid ranking limit")
	ErrInvalidEntry = errors.New("invalid ranking entry")
)
