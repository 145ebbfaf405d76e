package events

const (
	// KindPlaybackReady identifies a newly installed playable reply clip.
	KindPlaybackReady Kind = "playback.ready"
)

// PlaybackReady reports that a reply clip now occupies the audio slot.
type PlaybackReady struct {
	Base
	MimeType string
}

// NewPlaybackReady creates a playback-ready event.
func NewPlaybackReady(mimeType string) PlaybackReady {
	return PlaybackReady{Base: NewBase(KindPlaybackReady), MimeType: mimeType}
}
