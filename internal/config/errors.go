package config

import (
	"errors"
)

// Loading and validation failures wrap one of these so callers can tell a
// bad runtime value apart from an unreadable source via errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid service configuration")
	ErrLoadConfig    = errors.New("read service configuration failed")
)
