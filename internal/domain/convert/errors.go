package convert

import "errors"

// Sentinel kinds for conversion errors. These are permanent input-data
// problems; callers must not retry them.
var (
	// ErrUnavailable means no published factor covers the requested
	// event/course pair. The converter never guesses a missing factor.
	ErrUnavailable = errors.New("no published conversion factor")

	// ErrInvalidResult means the input performance itself is malformed.
	ErrInvalidResult = errors.New("invalid swim result")
)
