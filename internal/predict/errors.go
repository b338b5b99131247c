package predict

import "errors"

var (
	// ErrInvalidInput is returned when a prediction request is missing a
	// measurement or carries a non-numeric one.
	ErrInvalidInput = errors.New("invalid prediction input")
	// ErrInvalidArtifact is returned when a classifier or label encoder file
	// cannot be used.
	ErrInvalidArtifact = errors.New("invalid classifier artifact")
)
