package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when mood text or a playlist name is empty
	// after trimming.
	ErrEmptyInput = errors.New("domain: empty input")

	// ErrImageEncoding is returned when image bytes cannot be encoded into an
	// analysis-service payload.
	ErrImageEncoding = errors.New("domain: image encoding failed")

	// ErrTimeout is returned when an external call exceeds its deadline.
	ErrTimeout = errors.New("domain: request timed out")

	// ErrPlaylistNotFound is returned for operations on an unknown playlist id.
	ErrPlaylistNotFound = errors.New("domain: playlist not found")

	// ErrSuperseded is returned for a match call abandoned because a newer one
	// started in the same session. Its result is never delivered.
	ErrSuperseded = errors.New("domain: match superseded")

	// ErrSearch indicates the catalog search failed as a whole.
	ErrSearch = errors.New("domain: catalog search failed")
)

// ServiceError carries a non-success status code from the analysis service.
type ServiceError struct {
	Code int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("analysis service returned status %d", e.Code)
}

// AnalysisError marks a pipeline failure in the analysis stage. Resolution
// failures never produce one; they are absorbed per candidate.
type AnalysisError struct {
	Cause error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("mood analysis failed: %v", e.Cause)
}

func (e *AnalysisError) Unwrap() error { return e.Cause }
