package services

import "errors"

var (
	// ErrNoResumes is returned when a screening request carries no resumes.
	ErrNoResumes = errors.New("no resumes provided")

	// ErrUnreadableDocument marks documents whose bytes cannot be turned into text.
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrEncoderUnavailable is returned when an encoder cannot be constructed.
	ErrEncoderUnavailable = errors.New("embedding encoder unavailable")

	// ErrDimensionMismatch is returned when an encoder produces a vector of the wrong size.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
