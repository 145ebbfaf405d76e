package events

import "time"

const (
	// KindRecordingStarted identifies the start of a capture session.
	KindRecordingStarted Kind = "recording.started"
	// KindRecordingStopped identifies capture session finalization.
	KindRecordingStopped Kind = "recording.stopped"
)

// RecordingStarted reports the start of a capture session.
type RecordingStarted struct {
	Base
}

// NewRecordingStarted creates a recording start event.
func NewRecordingStarted() RecordingStarted {
	return RecordingStarted{Base: NewBase(KindRecordingStarted)}
}

// RecordingStopped reports capture session finalization. Duration is zero
// when finalization failed.
type RecordingStopped struct {
	Base
	Duration time.Duration
}

// NewRecordingStopped creates a recording stop event.
func NewRecordingStopped(duration time.Duration) RecordingStopped {
	return RecordingStopped{Base: NewBase(KindRecordingStopped), Duration: duration}
}
