package telemetry

import "errors"

var (
	// ErrInvalidInterval is returned by Run when the sampling interval is not positive.
	ErrInvalidInterval = errors.New("telemetry: interval must be positive")

	// ErrSinkFailed wraps errors returned by individual sinks.
	ErrSinkFailed = errors.New("telemetry: sink failed")
)
