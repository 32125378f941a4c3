package entity

import "errors"

var (
	// ErrInvalidTripWindow is returned when a trip window cannot be
	// resolved from the manifest data (missing or unparseable trip date,
	// negative duration).
	ErrInvalidTripWindow = errors.New("invalid trip window")

	// ErrSchedulingFailed wraps a failed batch insert of scheduled jobs.
	// The whole batch is rolled back; callers must not assume partial
	// persistence.
	ErrSchedulingFailed = errors.New("scheduling failed")

	// ErrInvalidTransition is returned when a job state change is not
	// allowed, e.g. cancelling a job that was already sent.
	ErrInvalidTransition = errors.New("invalid job status transition")

	// ErrRenderTemplate is returned when a template is structurally
	// unusable (empty body). Unknown placeholders are not an error.
	ErrRenderTemplate = errors.New("template cannot be rendered")
)
