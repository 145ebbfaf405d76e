package capture

import "errors"

var (
	// ErrInsecureContext is returned when the configured backend origin is
	// neither a secure transport origin nor a recognized local-development
	// host, so microphone access must not be requested.
	ErrInsecureContext = errors.New("microphone access requires a secure or local backend origin")

	// ErrPermissionDenied is returned when the platform reports the
	// microphone permission as denied.
	ErrPermissionDenied = errors.New("microphone permission denied")

	// ErrUnsupported is returned when no microphone capture capability
	// exists on this system.
	ErrUnsupported = errors.New("no microphone capture capability available")

	// ErrEmptyRecording is returned when a finalized recording holds zero
	// bytes of audio.
	ErrEmptyRecording = errors.New("recording produced no audio")
)
