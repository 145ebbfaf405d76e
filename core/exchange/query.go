package exchange

// Query is a user-submitted request, either typed text or a voice recording.
// Exactly one variant is active per request.
type Query interface {
	isQuery()
}

// TextQuery carries a typed free-form question.
type TextQuery struct {
	Text string
}

func (TextQuery) isQuery() {}

// VoiceQuery carries an encoded voice recording and its container MIME type.
type VoiceQuery struct {
	Audio         []byte
	ContainerMime string
}

func (VoiceQuery) isQuery() {}

// uploadFilename suggests a filename for the multipart audio part based on
// the recording's container.
func uploadFilename(containerMime string) string {
	switch {
	case containerMime == "audio/wav" || containerMime == "audio/x-wav":
		return "recording.wav"
	case containerMime == "audio/ogg" || containerMime == "audio/ogg;codecs=opus":
		return "recording.ogg"
	default:
		return "recording.webm"
	}
}
