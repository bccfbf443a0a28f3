package metrics

import "errors"

var (
	// ErrDisabled is returned by NewServer when the exporter is disabled in configuration.
	ErrDisabled = errors.New("metrics: disabled in configuration")

	// ErrRegisterFailed is returned when a collector cannot be registered.
	ErrRegisterFailed = errors.New("metrics: collector registration failed")

	// ErrListenFailed is returned when the HTTP listener cannot be opened.
	ErrListenFailed = errors.New("metrics: listen failed")
)
